package scoring

import (
	"testing"
	"time"

	"placewise/models"
	"placewise/services/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DefaultScoringService {
	return NewScoringService(DefaultConfig(), intent.NewDietaryIntentService(), intent.NewGeneralIntentService())
}

func floatPtr(v float64) *float64 { return &v }

func testTime() time.Time {
	return time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
}

func fullCandidate() models.POICandidate {
	loc := models.NewGeoPoint(53.05, 4.80)
	reviewed := testTime().AddDate(0, -1, 0)
	return models.POICandidate{
		ID:             "poi-1",
		Title:          "Strandpaviljoen Paal 17",
		Category:       "restaurant",
		Description:    "Beach restaurant with vegetarian options",
		Location:       &loc,
		Rating:         floatPtr(4.5),
		VisitCount:     250,
		LastReviewDate: &reviewed,
		Similarity:     0.8,
	}
}

func testUserContext() *models.UserContext {
	loc := models.NewGeoPoint(53.00, 4.75)
	now := testTime()
	return &models.UserContext{
		Location:    &loc,
		CurrentTime: &now,
		Entities:    []string{"restaurant"},
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, weightTolerance)
}

func TestCalculateSmartScore(t *testing.T) {
	svc := newTestService()

	t.Run("score in unit range with full metadata", func(t *testing.T) {
		poi := fullCandidate()
		score, breakdown := svc.CalculateSmartScore(&poi, testUserContext(), nil)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.Contains(t, breakdown, SignalSemantic)
		assert.Contains(t, breakdown, SignalDistance)
		assert.Contains(t, breakdown, SignalCategory)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		poi := fullCandidate()
		userCtx := testUserContext()
		first, _ := svc.CalculateSmartScore(&poi, userCtx, nil)
		second, _ := svc.CalculateSmartScore(&poi, userCtx, nil)
		assert.Equal(t, first, second)
	})

	t.Run("total over sparse candidates", func(t *testing.T) {
		// No coordinates, no rating, no review date: still a finite score.
		poi := models.POICandidate{ID: "bare", Title: "Bare POI", Similarity: 0.4}
		now := testTime()
		score, breakdown := svc.CalculateSmartScore(&poi, &models.UserContext{CurrentTime: &now}, nil)
		assert.False(t, score != score, "score is NaN")
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.NotContains(t, breakdown, SignalDistance)
		assert.Equal(t, neutralRating, breakdown[SignalRating])
		assert.Equal(t, neutralFreshness, breakdown[SignalFreshness])
	})

	t.Run("missing coordinates excludes distance and renormalizes", func(t *testing.T) {
		poi := fullCandidate()
		poi.Location = nil
		score, breakdown := svc.CalculateSmartScore(&poi, testUserContext(), nil)
		assert.NotContains(t, breakdown, SignalDistance)
		assert.LessOrEqual(t, score, 1.0)
	})

	t.Run("nil user context", func(t *testing.T) {
		poi := fullCandidate()
		score, breakdown := svc.CalculateSmartScore(&poi, nil, nil)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.NotContains(t, breakdown, SignalDistance)
		assert.NotContains(t, breakdown, SignalCategory)
	})

	t.Run("dietary signal only participates with detected intent", func(t *testing.T) {
		poi := fullCandidate()
		userCtx := testUserContext()
		_, breakdown := svc.CalculateSmartScore(&poi, userCtx, nil)
		assert.NotContains(t, breakdown, SignalDietary)

		userCtx.DietaryIntent = &models.DietaryIntent{Detected: true, Category: "vegetarian", Confidence: 0.7}
		_, breakdown = svc.CalculateSmartScore(&poi, userCtx, nil)
		assert.Equal(t, 1.0, breakdown[SignalDietary])
	})

	t.Run("closer POI scores higher on distance", func(t *testing.T) {
		near := fullCandidate()
		farLoc := models.NewGeoPoint(53.50, 5.50)
		far := fullCandidate()
		far.Location = &farLoc

		userCtx := testUserContext()
		_, nearBreakdown := svc.CalculateSmartScore(&near, userCtx, nil)
		_, farBreakdown := svc.CalculateSmartScore(&far, userCtx, nil)
		assert.Greater(t, nearBreakdown[SignalDistance], farBreakdown[SignalDistance])
	})

	t.Run("per-request weight override", func(t *testing.T) {
		poi := fullCandidate()
		userCtx := testUserContext()
		overrides := map[string]float64{SignalSemantic: 1.0, SignalRating: 0, SignalDistance: 0,
			SignalFreshness: 0, SignalPopularity: 0, SignalCategory: 0, SignalGeneralIntent: 0}
		score, _ := svc.CalculateSmartScore(&poi, userCtx, overrides)
		assert.InDelta(t, 0.8, score, 1e-9)
	})
}

func TestScoreCandidatesKeepsInputOrder(t *testing.T) {
	svc := newTestService()
	a := fullCandidate()
	b := fullCandidate()
	b.ID = "poi-2"
	results := svc.ScoreCandidates([]models.POICandidate{a, b}, testUserContext(), nil)
	require.Len(t, results, 2)
	assert.Equal(t, "poi-1", results[0].ID)
	assert.Equal(t, "poi-2", results[1].ID)
}

func TestHaversine(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		d1 := Haversine(53.05, 4.80, 52.37, 4.89)
		d2 := Haversine(52.37, 4.89, 53.05, 4.80)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("zero at identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(53.05, 4.80, 53.05, 4.80))
	})

	t.Run("known distance", func(t *testing.T) {
		// Texel lighthouse to Amsterdam, roughly 76 km.
		d := Haversine(53.18, 4.85, 52.37, 4.89)
		assert.InDelta(t, 90, d, 15)
	})
}

func TestCalculateScoringMetrics(t *testing.T) {
	results := []models.POIResult{
		{SmartScore: 0.9},
		{SmartScore: 0.5},
		{SmartScore: 0.7},
	}
	m := CalculateScoringMetrics(results, 2*time.Millisecond)
	assert.Equal(t, 3, m.Count)
	assert.InDelta(t, 0.7, m.AverageScore, 1e-9)
	assert.Equal(t, 0.9, m.MaxScore)
	assert.Equal(t, 0.5, m.MinScore)
	assert.Equal(t, 2.0, m.ScoringTimeMS)

	empty := CalculateScoringMetrics(nil, 0)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0.0, empty.AverageScore)
}
