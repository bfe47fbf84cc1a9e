package scoring

import (
	"encoding/json"
	"fmt"
	"math"

	"placewise/config"
)

// Signal keys of the composite score.
const (
	SignalSemantic      = "semanticSimilarity"
	SignalRating        = "rating"
	SignalDistance      = "distance"
	SignalFreshness     = "freshness"
	SignalPopularity    = "popularity"
	SignalDietary       = "dietaryIntent"
	SignalCategory      = "categoryRelevance"
	SignalGeneralIntent = "generalIntent"
)

// signalOrder fixes iteration order over the signal set.
var signalOrder = []string{
	SignalSemantic,
	SignalRating,
	SignalDistance,
	SignalFreshness,
	SignalPopularity,
	SignalDietary,
	SignalCategory,
	SignalGeneralIntent,
}

const weightTolerance = 1e-6

// Config is the immutable scoring configuration, built once at startup and
// passed into the scoring service. Weights of enabled signals sum to 1.0.
type Config struct {
	Weights map[string]float64
	Enabled map[string]bool

	// Curve parameters. DistanceReferenceKM is the half-score distance,
	// FreshnessHalfLifeDays the review-age half-life, PopularitySaturation
	// the visit count mapping to a full popularity score.
	DistanceReferenceKM   float64
	FreshnessHalfLifeDays float64
	PopularitySaturation  float64
}

// DefaultWeights returns the built-in weight set. It sums to 1.0 over the
// full signal set.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		SignalSemantic:      0.30,
		SignalRating:        0.15,
		SignalDistance:      0.15,
		SignalFreshness:     0.10,
		SignalPopularity:    0.10,
		SignalDietary:       0.05,
		SignalCategory:      0.10,
		SignalGeneralIntent: 0.05,
	}
}

// DefaultConfig returns a config with built-in weights, all signals enabled
// and default curve parameters.
func DefaultConfig() Config {
	enabled := make(map[string]bool, len(signalOrder))
	for _, s := range signalOrder {
		enabled[s] = true
	}
	return Config{
		Weights:               DefaultWeights(),
		Enabled:               enabled,
		DistanceReferenceKM:   5.0,
		FreshnessHalfLifeDays: 180.0,
		PopularitySaturation:  1000.0,
	}
}

// FromAppConfig materializes the scoring configuration from the loaded
// application config: JSON weight overrides, per-signal enable flags and
// curve parameters. Weights of disabled signals are zeroed and the remainder
// renormalized to sum to 1.0.
func FromAppConfig(app config.Config) (Config, error) {
	cfg := DefaultConfig()

	if app.ScoringWeights != "" {
		var overrides map[string]float64
		if err := json.Unmarshal([]byte(app.ScoringWeights), &overrides); err != nil {
			return Config{}, fmt.Errorf("parse SCORING_WEIGHTS: %w", err)
		}
		for key, w := range overrides {
			if _, ok := cfg.Weights[key]; !ok {
				return Config{}, fmt.Errorf("unknown scoring signal %q", key)
			}
			if w < 0 || w > 1 {
				return Config{}, fmt.Errorf("weight for %q out of [0,1]: %v", key, w)
			}
			cfg.Weights[key] = w
		}
	}

	cfg.Enabled[SignalSemantic] = app.EnableSemantic
	cfg.Enabled[SignalRating] = app.EnableRating
	cfg.Enabled[SignalDistance] = app.EnableDistance
	cfg.Enabled[SignalFreshness] = app.EnableFreshness
	cfg.Enabled[SignalPopularity] = app.EnablePopularity
	cfg.Enabled[SignalDietary] = app.EnableDietary
	cfg.Enabled[SignalCategory] = app.EnableCategory
	cfg.Enabled[SignalGeneralIntent] = app.EnableGeneralIntent

	if app.DistanceReferenceKM > 0 {
		cfg.DistanceReferenceKM = app.DistanceReferenceKM
	}
	if app.FreshnessHalfLifeDays > 0 {
		cfg.FreshnessHalfLifeDays = app.FreshnessHalfLifeDays
	}
	if app.PopularitySaturation > 0 {
		cfg.PopularitySaturation = app.PopularitySaturation
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize zeroes disabled weights and rescales the enabled ones to sum to 1.
func (c *Config) normalize() error {
	sum := 0.0
	for _, s := range signalOrder {
		if !c.Enabled[s] {
			c.Weights[s] = 0
			continue
		}
		sum += c.Weights[s]
	}
	if sum <= weightTolerance {
		return fmt.Errorf("scoring config: enabled signal weights sum to zero")
	}
	if math.Abs(sum-1.0) > weightTolerance {
		for _, s := range signalOrder {
			if c.Enabled[s] {
				c.Weights[s] /= sum
			}
		}
	}
	return nil
}
