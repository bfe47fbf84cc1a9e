package intent

import (
	"testing"

	"placewise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectIntent(t *testing.T) {
	svc := NewGeneralIntentService()

	t.Run("single intent", func(t *testing.T) {
		result := svc.DetectIntent("is the museum open tomorrow?")
		require.NotNil(t, result.Primary)
		assert.Equal(t, "opening_hours", result.Primary.Label)
		assert.Equal(t, 1.3, result.Primary.Boost)
	})

	t.Run("highest boost becomes primary", func(t *testing.T) {
		// Matches both culture (1.15) and opening_hours (1.3).
		result := svc.DetectIntent("wanneer is het museum geopend")
		require.NotNil(t, result.Primary)
		assert.Equal(t, "opening_hours", result.Primary.Label)
		require.Len(t, result.Secondary, 1)
		assert.Equal(t, "culture", result.Secondary[0].Label)
	})

	t.Run("confidence grows with matches", func(t *testing.T) {
		single := svc.DetectIntent("souvenir shops")
		assert.InDelta(t, 0.6, single.Confidence, 1e-9)

		double := svc.DetectIntent("restaurant near the beach")
		assert.InDelta(t, 0.8, double.Confidence, 1e-9)
	})

	t.Run("confidence capped at one", func(t *testing.T) {
		result := svc.DetectIntent("open restaurant for kids near the beach museum market")
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("actions deduplicated in table order", func(t *testing.T) {
		// culture and outdoor both suggest routes/opening checks.
		result := svc.DetectIntent("museum and hiking in the natuur")
		assert.Equal(t, []string{"show_route", "check_weather", "check_opening_hours", "show_exhibitions"}, result.SuggestedActions)
	})

	t.Run("no intent detected", func(t *testing.T) {
		result := svc.DetectIntent("xyzzy")
		assert.Nil(t, result.Primary)
		assert.Zero(t, result.Confidence)
	})
}

func TestCalculateIntentBoost(t *testing.T) {
	svc := NewGeneralIntentService()

	poi := &models.POICandidate{
		Title:       "Strandpaviljoen Paal 17",
		Category:    "restaurant",
		Description: "Food and drinks on the beach",
	}

	t.Run("primary and secondary both contribute", func(t *testing.T) {
		result := svc.DetectIntent("restaurant at the beach")
		boost := svc.CalculateIntentBoost(poi, result)
		// food_drink surplus 0.25 plus outdoor surplus 0.2.
		assert.InDelta(t, 0.45, boost, 1e-9)
	})

	t.Run("intent without poi evidence contributes nothing", func(t *testing.T) {
		result := svc.DetectIntent("souvenir shop")
		assert.Zero(t, svc.CalculateIntentBoost(poi, result))
	})

	t.Run("nil inputs", func(t *testing.T) {
		assert.Zero(t, svc.CalculateIntentBoost(nil, &models.IntentResult{}))
		assert.Zero(t, svc.CalculateIntentBoost(poi, nil))
		assert.Zero(t, svc.CalculateIntentBoost(poi, &models.IntentResult{}))
	})
}
