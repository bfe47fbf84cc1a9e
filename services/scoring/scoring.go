package scoring

import (
	"math"
	"strings"

	"placewise/models"
	"placewise/services/intent"
)

// ScoringService computes composite smart scores for POI candidates.
// Scoring is pure computation: deterministic for identical inputs, total over
// any syntactically valid candidate. Missing metadata degrades to a neutral
// default or drops the signal from the weighted sum, never errors.
type ScoringService interface {
	CalculateSmartScore(poi *models.POICandidate, userCtx *models.UserContext, weights map[string]float64) (float64, map[string]float64)
	ScoreCandidates(candidates []models.POICandidate, userCtx *models.UserContext, weights map[string]float64) []models.POIResult
	GetConfig() Config
	GetDefaultWeights() map[string]float64
}

// Neutral defaults for signals with missing data.
const (
	neutralRating    = 0.5
	neutralFreshness = 0.5
)

// DefaultScoringService implements ScoringService.
type DefaultScoringService struct {
	cfg     Config
	dietary intent.DietaryIntentService
	general intent.GeneralIntentService
}

func NewScoringService(cfg Config, dietary intent.DietaryIntentService, general intent.GeneralIntentService) *DefaultScoringService {
	return &DefaultScoringService{cfg: cfg, dietary: dietary, general: general}
}

func (s *DefaultScoringService) GetConfig() Config {
	return s.cfg
}

func (s *DefaultScoringService) GetDefaultWeights() map[string]float64 {
	return DefaultWeights()
}

// component is one computed signal for a single POI. Inapplicable signals
// (e.g. distance without coordinates) are left out of the weighted sum and
// the remaining weights renormalized.
type component struct {
	key        string
	score      float64
	applicable bool
}

// CalculateSmartScore computes the weighted composite score for one POI.
// The optional weights map overrides configured weights per request; nil
// means configured weights. Returns the score in [0,1] and the per-signal
// breakdown of every applicable component.
func (s *DefaultScoringService) CalculateSmartScore(poi *models.POICandidate, userCtx *models.UserContext, weights map[string]float64) (float64, map[string]float64) {
	components := []component{
		s.semanticComponent(poi),
		s.ratingComponent(poi),
		s.distanceComponent(poi, userCtx),
		s.freshnessComponent(poi, userCtx),
		s.popularityComponent(poi),
		s.dietaryComponent(poi, userCtx),
		s.categoryComponent(poi, userCtx),
		s.generalIntentComponent(poi, userCtx),
	}

	effective := s.cfg.Weights
	if weights != nil {
		effective = mergeWeights(s.cfg.Weights, weights)
	}

	weightSum := 0.0
	for _, c := range components {
		if c.applicable && s.cfg.Enabled[c.key] {
			weightSum += effective[c.key]
		}
	}

	breakdown := make(map[string]float64, len(components))
	score := 0.0
	for _, c := range components {
		if !c.applicable || !s.cfg.Enabled[c.key] {
			continue
		}
		breakdown[c.key] = c.score
		if weightSum > weightTolerance {
			score += c.score * effective[c.key] / weightSum
		}
	}
	return clamp01(score), breakdown
}

// ScoreCandidates scores every candidate and returns result copies in input
// order. Sorting is the orchestrator's concern.
func (s *DefaultScoringService) ScoreCandidates(candidates []models.POICandidate, userCtx *models.UserContext, weights map[string]float64) []models.POIResult {
	results := make([]models.POIResult, 0, len(candidates))
	for i := range candidates {
		score, breakdown := s.CalculateSmartScore(&candidates[i], userCtx, weights)
		results = append(results, models.POIResult{
			POICandidate:   candidates[i],
			SmartScore:     score,
			ScoreBreakdown: breakdown,
		})
	}
	return results
}

func (s *DefaultScoringService) semanticComponent(poi *models.POICandidate) component {
	return component{key: SignalSemantic, score: clamp01(poi.Similarity), applicable: true}
}

// ratingComponent maps the 0-5 rating scale to [0,1]. Unrated POIs score the
// neutral default so the signal does not structurally penalize them.
func (s *DefaultScoringService) ratingComponent(poi *models.POICandidate) component {
	if poi.Rating == nil {
		return component{key: SignalRating, score: neutralRating, applicable: true}
	}
	return component{key: SignalRating, score: clamp01(*poi.Rating / 5.0), applicable: true}
}

// distanceComponent scores proximity via an inverse decay: 1 at zero distance,
// 0.5 at the reference radius. Without both coordinate pairs the signal is
// inapplicable, not zero.
func (s *DefaultScoringService) distanceComponent(poi *models.POICandidate, userCtx *models.UserContext) component {
	if userCtx == nil {
		return component{key: SignalDistance}
	}
	poiLat, poiLon, okPOI := poi.Location.LatLon()
	userLat, userLon, okUser := userCtx.Location.LatLon()
	if !okPOI || !okUser {
		return component{key: SignalDistance}
	}
	dist := Haversine(userLat, userLon, poiLat, poiLon)
	score := 1.0 / (1.0 + dist/s.cfg.DistanceReferenceKM)
	return component{key: SignalDistance, score: clamp01(score), applicable: true}
}

// freshnessComponent decays exponentially with review age, halving every
// configured half-life. A missing review date scores neutral.
func (s *DefaultScoringService) freshnessComponent(poi *models.POICandidate, userCtx *models.UserContext) component {
	if poi.LastReviewDate == nil {
		return component{key: SignalFreshness, score: neutralFreshness, applicable: true}
	}
	ageDays := userCtx.Now().Sub(*poi.LastReviewDate).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	score := math.Pow(0.5, ageDays/s.cfg.FreshnessHalfLifeDays)
	return component{key: SignalFreshness, score: clamp01(score), applicable: true}
}

// popularityComponent saturates logarithmically so high-volume POIs cannot
// dominate on volume alone.
func (s *DefaultScoringService) popularityComponent(poi *models.POICandidate) component {
	visits := poi.VisitCount
	if visits < 0 {
		visits = 0
	}
	score := math.Log1p(float64(visits)) / math.Log1p(s.cfg.PopularitySaturation)
	return component{key: SignalPopularity, score: clamp01(score), applicable: true}
}

// dietaryComponent only participates when the query carried a dietary intent:
// 1 on a POI match, 0 on a miss, excluded entirely otherwise.
func (s *DefaultScoringService) dietaryComponent(poi *models.POICandidate, userCtx *models.UserContext) component {
	if userCtx == nil || userCtx.DietaryIntent == nil || !userCtx.DietaryIntent.Detected {
		return component{key: SignalDietary}
	}
	if s.dietary.CheckPOIDietaryMatch(poi, userCtx.DietaryIntent) {
		return component{key: SignalDietary, score: 1.0, applicable: true}
	}
	return component{key: SignalDietary, score: 0.0, applicable: true}
}

// categoryComponent measures keyword overlap between query entities and the
// POI category. Without extracted entities the signal is inapplicable.
func (s *DefaultScoringService) categoryComponent(poi *models.POICandidate, userCtx *models.UserContext) component {
	if userCtx == nil || len(userCtx.Entities) == 0 {
		return component{key: SignalCategory}
	}
	category := strings.ToLower(poi.Category + " " + poi.Subcategory)
	matched := 0
	for _, e := range userCtx.Entities {
		if strings.Contains(category, strings.ToLower(e)) {
			matched++
		}
	}
	score := float64(matched) / float64(len(userCtx.Entities))
	return component{key: SignalCategory, score: clamp01(score), applicable: true}
}

func (s *DefaultScoringService) generalIntentComponent(poi *models.POICandidate, userCtx *models.UserContext) component {
	if userCtx == nil || userCtx.GeneralIntent == nil || userCtx.GeneralIntent.Primary == nil {
		return component{key: SignalGeneralIntent}
	}
	boost := s.general.CalculateIntentBoost(poi, userCtx.GeneralIntent)
	return component{key: SignalGeneralIntent, score: clamp01(boost), applicable: true}
}

// mergeWeights overlays per-request weight overrides onto the configured set.
// Unknown keys are ignored.
func mergeWeights(base, overrides map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		if _, ok := merged[k]; ok && v >= 0 {
			merged[k] = v
		}
	}
	return merged
}

// Haversine returns the great-circle distance in kilometres between two
// coordinates, using the mean Earth radius.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
