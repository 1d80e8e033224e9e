package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelByEnvironment(t *testing.T) {
	cases := []struct {
		env, level string
		debug      bool
		info       bool
	}{
		{env: "development", debug: true, info: true},
		{env: "local", debug: true, info: true},
		{env: "production", debug: false, info: true},
		{env: "", debug: false, info: true},
		{env: "development", level: "warn", debug: false, info: false},
		{env: "production", level: "debug", debug: true, info: true},
	}
	for _, tc := range cases {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			l, err := New(tc.env, tc.level)
			require.NoError(t, err)
			assert.Equal(t, tc.debug, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tc.info, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("production", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
