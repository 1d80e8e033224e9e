package id

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reHex32     = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reDocNumber = regexp.MustCompile(`^(LA|OR|CR)-\d{6}-\d{5}$`)
)

func TestNewID32_IsUndashedUUIDv4(t *testing.T) {
	seen := make(map[string]bool, 100)
	for i := 0; i < 100; i++ {
		got := NewID32()
		require.Regexp(t, reHex32, got)

		u, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), u.Version())
		assert.Equal(t, uuid.RFC4122, u.Variant())
		assert.Equal(t, got, hexOf(u))

		require.False(t, seen[got], "duplicate id %q", got)
		seen[got] = true
	}
}

func hexOf(u uuid.UUID) string {
	s := u.String()
	return s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
}

func TestDocumentNumber_Format(t *testing.T) {
	now := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "LA-202503-00042", DocumentNumber("LA", now, 42))
	assert.Equal(t, "OR-202503-00000", DocumentNumber("OR", now, 100000))
	assert.Equal(t, "CR-202503-00007", DocumentNumber("CR", now, -7))
}

func TestRandom_Numbers(t *testing.T) {
	g := Random{}
	now := time.Now()

	require.Regexp(t, reDocNumber, g.ReferenceNumber(now))
	require.Regexp(t, reDocNumber, g.ReceiptNumber("OR", now))
	require.Regexp(t, reDocNumber, g.ReceiptNumber("CR", now))
	may := time.Date(2025, time.May, 2, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "CR-202505-", g.ReceiptNumber("CR", may)[:10])
	require.Regexp(t, reHex32, g.NewID())
}

func TestSequence_DeterministicAndRepeat(t *testing.T) {
	s := NewSequence()
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "00000000000000000000000000000001", s.NewID())
	assert.Equal(t, "LA-202501-00001", s.ReferenceNumber(now))
	assert.Equal(t, "OR-202501-00002", s.ReceiptNumber("OR", now))

	s.Repeat(2)
	assert.Equal(t, "OR-202501-00002", s.ReceiptNumber("OR", now))
	assert.Equal(t, "OR-202501-00002", s.ReceiptNumber("OR", now))
	assert.Equal(t, "OR-202501-00003", s.ReceiptNumber("OR", now))
}
