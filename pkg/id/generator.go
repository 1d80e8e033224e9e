package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// suffixSpace bounds the random tail of document numbers (NNNNN).
const suffixSpace = 100000

// Generator issues public identifiers and the human readable numbers printed
// on applications and receipts.
type Generator interface {
	NewID() string
	// ReferenceNumber returns LA-YYYYMM-NNNNN for the month of now.
	ReferenceNumber(now time.Time) string
	// ReceiptNumber returns {prefix}-YYYYMM-NNNNN for the month of now.
	ReceiptNumber(prefix string, now time.Time) string
}

// DocumentNumber formats prefix-YYYYMM-NNNNN; n is reduced modulo 100000.
func DocumentNumber(prefix string, now time.Time, n int) string {
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%s-%04d%02d-%05d", prefix, now.Year(), int(now.Month()), n%suffixSpace)
}

// Random is the production generator backed by crypto/rand.
type Random struct{}

func (Random) NewID() string { return NewID32() }

func (Random) ReferenceNumber(now time.Time) string {
	return DocumentNumber("LA", now, randomSuffix())
}

func (Random) ReceiptNumber(prefix string, now time.Time) string {
	return DocumentNumber(prefix, now, randomSuffix())
}

func randomSuffix() int {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixSpace))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

// Sequence is a deterministic generator for tests. Numbers count up from 1;
// Repeat makes the next k document numbers reuse the previous suffix, which
// is how tests provoke uniqueness collisions.
type Sequence struct {
	mu     sync.Mutex
	ids    int
	next   int
	repeat int
}

func NewSequence() *Sequence { return &Sequence{} }

// Repeat forces the next k document numbers to collide with the last one.
func (s *Sequence) Repeat(k int) {
	s.mu.Lock()
	s.repeat = k
	s.mu.Unlock()
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids++
	return fmt.Sprintf("%032x", s.ids)
}

func (s *Sequence) ReferenceNumber(now time.Time) string {
	return DocumentNumber("LA", now, s.step())
}

func (s *Sequence) ReceiptNumber(prefix string, now time.Time) string {
	return DocumentNumber(prefix, now, s.step())
}

func (s *Sequence) step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repeat > 0 && s.next > 0 {
		s.repeat--
		return s.next
	}
	s.next++
	return s.next
}
