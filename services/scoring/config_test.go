package scoring

import (
	"testing"

	"placewise/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allSignalsEnabled() config.Config {
	return config.Config{
		EnableSemantic:      true,
		EnableRating:        true,
		EnableDistance:      true,
		EnableFreshness:     true,
		EnablePopularity:    true,
		EnableDietary:       true,
		EnableCategory:      true,
		EnableGeneralIntent: true,
	}
}

func TestFromAppConfig(t *testing.T) {
	t.Run("defaults when no overrides set", func(t *testing.T) {
		cfg, err := FromAppConfig(allSignalsEnabled())
		require.NoError(t, err)
		assert.Equal(t, DefaultWeights(), cfg.Weights)
		assert.Equal(t, 5.0, cfg.DistanceReferenceKM)
		assert.Equal(t, 180.0, cfg.FreshnessHalfLifeDays)
		assert.Equal(t, 1000.0, cfg.PopularitySaturation)
	})

	t.Run("weight overrides renormalized", func(t *testing.T) {
		app := allSignalsEnabled()
		app.ScoringWeights = `{"semanticSimilarity": 0.6}`
		cfg, err := FromAppConfig(app)
		require.NoError(t, err)
		sum := 0.0
		for _, w := range cfg.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, weightTolerance)
		assert.Greater(t, cfg.Weights[SignalSemantic], cfg.Weights[SignalRating])
	})

	t.Run("disabled signal weight zeroed and remainder rescaled", func(t *testing.T) {
		app := allSignalsEnabled()
		app.EnableDistance = false
		cfg, err := FromAppConfig(app)
		require.NoError(t, err)
		assert.Equal(t, 0.0, cfg.Weights[SignalDistance])
		sum := 0.0
		for _, w := range cfg.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, weightTolerance)
	})

	t.Run("unknown signal key rejected", func(t *testing.T) {
		app := allSignalsEnabled()
		app.ScoringWeights = `{"pageRank": 0.5}`
		_, err := FromAppConfig(app)
		assert.Error(t, err)
	})

	t.Run("weight out of range rejected", func(t *testing.T) {
		app := allSignalsEnabled()
		app.ScoringWeights = `{"rating": 1.5}`
		_, err := FromAppConfig(app)
		assert.Error(t, err)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		app := allSignalsEnabled()
		app.ScoringWeights = `{"rating":`
		_, err := FromAppConfig(app)
		assert.Error(t, err)
	})

	t.Run("all signals disabled rejected", func(t *testing.T) {
		_, err := FromAppConfig(config.Config{})
		assert.Error(t, err)
	})

	t.Run("curve parameter overrides", func(t *testing.T) {
		app := allSignalsEnabled()
		app.DistanceReferenceKM = 2.5
		app.FreshnessHalfLifeDays = 90
		app.PopularitySaturation = 500
		cfg, err := FromAppConfig(app)
		require.NoError(t, err)
		assert.Equal(t, 2.5, cfg.DistanceReferenceKM)
		assert.Equal(t, 90.0, cfg.FreshnessHalfLifeDays)
		assert.Equal(t, 500.0, cfg.PopularitySaturation)
	})
}
