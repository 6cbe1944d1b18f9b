package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{name: "empty defaults to info", input: "", expected: zapcore.InfoLevel},
		{name: "debug", input: "debug", expected: zapcore.DebugLevel},
		{name: "upper case", input: "DEBUG", expected: zapcore.DebugLevel},
		{name: "warning alias", input: "warning", expected: zapcore.WarnLevel},
		{name: "error", input: " error ", expected: zapcore.ErrorLevel},
		{name: "mixed case", input: "Warn", expected: zapcore.WarnLevel},
		{name: "zap dpanic", input: "dpanic", expected: zapcore.DPanicLevel},
		{name: "zap fatal", input: "FATAL", expected: zapcore.FatalLevel},
		{name: "invalid falls back to info", input: "verbose", expected: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lvl, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, lvl)
		})
	}
}

func TestNamedReturnsChildLogger(t *testing.T) {
	t.Parallel()

	l := Named("synchronizer")
	require.NotNil(t, l)
	// Should not panic
	l.Debugw("test message", "key", "value")
}
