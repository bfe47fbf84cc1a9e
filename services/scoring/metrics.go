package scoring

import (
	"time"

	"placewise/models"
)

// ScoringMetrics is a reporting-only aggregate over one scoring pass. It has
// no effect on ranking.
type ScoringMetrics struct {
	Count         int     `json:"count"`
	AverageScore  float64 `json:"averageScore"`
	MaxScore      float64 `json:"maxScore"`
	MinScore      float64 `json:"minScore"`
	ScoringTimeMS float64 `json:"scoringTimeMs"`
}

// CalculateScoringMetrics summarizes the scores of one result set.
func CalculateScoringMetrics(results []models.POIResult, scoringTime time.Duration) ScoringMetrics {
	m := ScoringMetrics{
		Count:         len(results),
		ScoringTimeMS: float64(scoringTime.Microseconds()) / 1000.0,
	}
	if len(results) == 0 {
		return m
	}
	m.MinScore = results[0].SmartScore
	sum := 0.0
	for _, r := range results {
		sum += r.SmartScore
		if r.SmartScore > m.MaxScore {
			m.MaxScore = r.SmartScore
		}
		if r.SmartScore < m.MinScore {
			m.MinScore = r.SmartScore
		}
	}
	m.AverageScore = sum / float64(len(results))
	return m
}
