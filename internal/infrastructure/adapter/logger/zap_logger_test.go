package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

func TestZapLogger_Levels(t *testing.T) {
	l, err := NewZapLogger(Options{Level: "warn", Service: "wager-ledger"})
	require.NoError(t, err)

	zl := l.(*ZapLogger)
	assert.Equal(t, core.LogLevelWarn, l.GetLevel())
	assert.False(t, zl.atom.Enabled(zapcore.InfoLevel))

	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, l.GetLevel())
	assert.True(t, zl.atom.Enabled(zapcore.DebugLevel))
}

func TestZapLogger_ProductionBuilds(t *testing.T) {
	l, err := NewZapLogger(Options{Production: true, Level: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, core.LogLevelInfo, l.GetLevel())
	l.Info("settled", map[string]any{"round_id": "r1"})
}

func TestMapToZapFields(t *testing.T) {
	fields := mapToZapFields(map[string]any{
		"error":  errors.New("boom"),
		"amount": int64(5),
	})
	require.Len(t, fields, 2)

	types := map[string]zapcore.FieldType{}
	for _, f := range fields {
		types[f.Key] = f.Type
	}
	assert.Equal(t, zapcore.ErrorType, types["error"])
	assert.Equal(t, zapcore.Int64Type, types["amount"])
}
