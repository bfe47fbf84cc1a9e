package intent

import (
	"strings"

	"placewise/models"
)

// GeneralIntentService classifies the broader purpose of a query (opening
// hours, food, family outing, ...) and translates matched intents into a
// per-POI ranking boost.
type GeneralIntentService interface {
	DetectIntent(query string) *models.IntentResult
	CalculateIntentBoost(poi *models.POICandidate, result *models.IntentResult) float64
}

// LabelOpeningHours identifies the opening-hours intent row; the orchestrator
// keys its opening-status filter on it.
const LabelOpeningHours = "opening_hours"

// intentEntry is one row of the ordered intent table. A query may match
// several rows (multi-intent); the highest boost becomes the primary intent
// and table order breaks ties.
type intentEntry struct {
	Label       string
	Keywords    []string
	Boost       float64
	Description string
	Actions     []string
}

var intentTable = []intentEntry{
	{
		Label:       LabelOpeningHours,
		Keywords:    []string{"open", "hours", "openingstijden", "geopend", "gesloten", "closed", "wanneer"},
		Boost:       1.3,
		Description: "user asks when a place is open",
		Actions:     []string{"check_opening_hours", "show_route"},
	},
	{
		Label:       "food_drink",
		Keywords:    []string{"eat", "restaurant", "food", "lunch", "dinner", "cafe", "eten", "drinken", "ontbijt", "diner"},
		Boost:       1.25,
		Description: "user looks for food or drinks",
		Actions:     []string{"show_menu_highlights", "filter_dietary"},
	},
	{
		Label:       "family",
		Keywords:    []string{"kids", "children", "family", "kinderen", "gezin", "familie", "speeltuin", "playground"},
		Boost:       1.2,
		Description: "family-friendly outing",
		Actions:     []string{"filter_family_friendly"},
	},
	{
		Label:       "outdoor",
		Keywords:    []string{"beach", "strand", "hiking", "wandelen", "fietsen", "cycling", "nature", "natuur", "duinen"},
		Boost:       1.2,
		Description: "outdoor activity",
		Actions:     []string{"show_route", "check_weather"},
	},
	{
		Label:       "culture",
		Keywords:    []string{"museum", "history", "geschiedenis", "cultuur", "art", "kunst", "monument"},
		Boost:       1.15,
		Description: "cultural visit",
		Actions:     []string{"check_opening_hours", "show_exhibitions"},
	},
	{
		Label:       "shopping",
		Keywords:    []string{"shop", "winkel", "souvenir", "market", "markt", "boutique"},
		Boost:       1.1,
		Description: "shopping trip",
		Actions:     []string{"show_route"},
	},
}

// DefaultGeneralIntentService implements GeneralIntentService.
type DefaultGeneralIntentService struct{}

func NewGeneralIntentService() *DefaultGeneralIntentService {
	return &DefaultGeneralIntentService{}
}

// DetectIntent matches the query against every row of the intent table.
// Confidence grows with the number of matched rows: 0.4 + 0.2 per match,
// capped at 1.0. Suggested actions are collected from matched rows in table
// order, deduplicated.
func (s *DefaultGeneralIntentService) DetectIntent(query string) *models.IntentResult {
	lower := strings.ToLower(query)

	var matched []intentEntry
	for _, entry := range intentTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, entry)
				break
			}
		}
	}

	result := &models.IntentResult{}
	if len(matched) == 0 {
		return result
	}

	primaryIdx := 0
	for i, m := range matched {
		if m.Boost > matched[primaryIdx].Boost {
			primaryIdx = i
		}
	}
	primary := matched[primaryIdx]
	result.Primary = &models.Intent{Label: primary.Label, Boost: primary.Boost, Description: primary.Description}

	seen := map[string]bool{}
	for i, m := range matched {
		if i != primaryIdx {
			result.Secondary = append(result.Secondary, models.Intent{
				Label: m.Label, Boost: m.Boost, Description: m.Description,
			})
		}
		for _, a := range m.Actions {
			if !seen[a] {
				seen[a] = true
				result.SuggestedActions = append(result.SuggestedActions, a)
			}
		}
	}

	confidence := 0.4 + 0.2*float64(len(matched))
	if confidence > 1.0 {
		confidence = 1.0
	}
	result.Confidence = confidence
	return result
}

// CalculateIntentBoost returns an additive boost for the POI: each detected
// intent whose keywords occur in the POI's own text contributes its boost
// surplus over 1.0. The caller clamps and weights the total.
func (s *DefaultGeneralIntentService) CalculateIntentBoost(poi *models.POICandidate, result *models.IntentResult) float64 {
	if poi == nil || result == nil || result.Primary == nil {
		return 0
	}
	text := strings.ToLower(poi.Title + " " + poi.Category + " " + poi.Description)

	boost := 0.0
	apply := func(label string, factor float64) {
		for _, entry := range intentTable {
			if entry.Label != label {
				continue
			}
			for _, kw := range entry.Keywords {
				if strings.Contains(text, kw) {
					boost += factor - 1.0
					return
				}
			}
		}
	}
	apply(result.Primary.Label, result.Primary.Boost)
	for _, sec := range result.Secondary {
		apply(sec.Label, sec.Boost)
	}
	return boost
}
