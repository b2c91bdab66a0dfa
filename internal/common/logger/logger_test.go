// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelFallback(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   zapcore.Level
	}{
		{name: "debug console", level: "debug", format: "console", want: zapcore.DebugLevel},
		{name: "warn json", level: "warn", format: "json", want: zapcore.WarnLevel},
		{name: "unknown level", level: "loud", format: "json", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level, tt.format)
			assert.True(t, l.Core().Enabled(tt.want))
			assert.False(t, l.Core().Enabled(tt.want-1))
		})
	}
}

func TestNewStructured(t *testing.T) {
	l := NewStructured("error", "json")

	wrapped, ok := l.(*zapWrapper)
	assert.True(t, ok)
	assert.False(t, wrapped.l.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, wrapped.l.Core().Enabled(zapcore.ErrorLevel))

	assert.NotPanics(t, func() {
		l.WithError(errors.New("boom")).With(map[string]interface{}{"action": "x"}).Debug("dropped", nil)
	})
}
