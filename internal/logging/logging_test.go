package logging

import (
	"testing"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New("warn", format)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestSugared_SatisfiesEngineLogger(t *testing.T) {
	var _ calculation.Logger = Sugared(zaptest.NewLogger(t))
	var _ calculation.Logger = Sugared(nil)
}

func TestSugared_EngineDebugOutput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := calculation.NewCalculationEngine2025()
	engine.SetLogger(Sugared(zap.New(core)))

	engine.Contractor(domain.DefaultInput(engine.Rates))

	entries := logs.FilterMessageSnippet("contractor: gross=80850.00").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
