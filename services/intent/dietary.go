package intent

import (
	"strings"

	"placewise/models"
)

// DietaryIntentService detects dietary intent in free-text queries and checks
// whether a POI satisfies it.
type DietaryIntentService interface {
	DetectDietaryIntent(query string) *models.DietaryIntent
	CheckPOIDietaryMatch(poi *models.POICandidate, dietary *models.DietaryIntent) bool
}

// dietaryCategory binds a category label to its keyword list (English + Dutch).
// Categories are evaluated in declared order; on an equal keyword-match count
// the earlier category wins.
type dietaryCategory struct {
	Label    string
	Keywords []string
}

var dietaryCategories = []dietaryCategory{
	{Label: "vegetarian", Keywords: []string{"vegetarian", "vegetarisch", "veggie"}},
	{Label: "vegan", Keywords: []string{"vegan", "veganistisch", "plantaardig", "plant-based", "plant based"}},
	{Label: "gluten-free", Keywords: []string{"gluten-free", "gluten free", "glutenvrij", "celiac", "coeliakie"}},
	{Label: "halal", Keywords: []string{"halal"}},
}

// Confidence is tiered, not graded: a single keyword hit is a clear but weak
// signal, two or more hits an explicit request.
const (
	dietaryConfidenceSingle   = 0.7
	dietaryConfidenceMultiple = 0.9
)

// DefaultDietaryIntentService implements DietaryIntentService.
type DefaultDietaryIntentService struct{}

func NewDietaryIntentService() *DefaultDietaryIntentService {
	return &DefaultDietaryIntentService{}
}

// DetectDietaryIntent scans the query against the category keyword tables and
// returns the best-matching category, or a non-detected intent when nothing
// matches. Detection is binary per category; the winning category is the one
// with the most keyword hits, table order breaking ties.
func (s *DefaultDietaryIntentService) DetectDietaryIntent(query string) *models.DietaryIntent {
	lower := strings.ToLower(query)

	best := models.DietaryIntent{}
	bestHits := 0
	for _, cat := range dietaryCategories {
		var hits []string
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > bestHits {
			bestHits = len(hits)
			best = models.DietaryIntent{
				Detected: true,
				Category: cat.Label,
				Keywords: hits,
			}
		}
	}
	if !best.Detected {
		return &models.DietaryIntent{Detected: false}
	}
	if bestHits >= 2 {
		best.Confidence = dietaryConfidenceMultiple
	} else {
		best.Confidence = dietaryConfidenceSingle
	}
	return &best
}

// CheckPOIDietaryMatch reports whether the POI's text content mentions any
// keyword of the detected dietary category.
func (s *DefaultDietaryIntentService) CheckPOIDietaryMatch(poi *models.POICandidate, dietary *models.DietaryIntent) bool {
	if poi == nil || dietary == nil || !dietary.Detected {
		return false
	}
	var b strings.Builder
	b.WriteString(poi.Title)
	b.WriteString(" ")
	b.WriteString(poi.Description)
	b.WriteString(" ")
	b.WriteString(poi.QAContent)
	for _, a := range poi.Amenities {
		b.WriteString(" ")
		b.WriteString(a)
	}
	text := strings.ToLower(b.String())

	for _, cat := range dietaryCategories {
		if cat.Label != dietary.Category {
			continue
		}
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}
