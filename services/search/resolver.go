package search

import (
	"regexp"
	"strconv"
	"strings"

	"placewise/models"
)

// Reference resolution strategies, in orchestrator priority order.
const (
	StrategyPositional = "positional"
	StrategySemantic   = "semantic-keyword"
	StrategyDirect     = "direct-mention"
)

// ResolvedReference is the transient outcome of follow-up resolution: the
// matched prior result and the strategy that found it.
type ResolvedReference struct {
	POI      *models.POIResult
	Strategy string
}

// ContextResolver resolves follow-up queries against previously shown
// results. Every strategy is a pure function of (query, previousResults);
// ties are broken by table order, never by score.
type ContextResolver struct {
	ordinalNumeric *regexp.Regexp
}

// ordinalPattern binds a phrase set to a result index; -1 means the last
// result. Patterns are tried in declared order and the first hit wins even
// when several ordinals appear in one query.
type ordinalPattern struct {
	Phrases []string
	Index   int
}

var ordinalPatterns = []ordinalPattern{
	{Phrases: []string{"first", "1st", "eerste"}, Index: 0},
	{Phrases: []string{"second", "2nd", "tweede"}, Index: 1},
	{Phrases: []string{"third", "3rd", "derde"}, Index: 2},
	{Phrases: []string{"fourth", "4th", "vierde"}, Index: 3},
	{Phrases: []string{"fifth", "5th", "vijfde"}, Index: 4},
	{Phrases: []string{"last", "laatste"}, Index: -1},
}

// semanticMapping is a closed, hand-authored keyword-to-title-substring
// table. It only ever resolves POIs already present in the previous results.
type semanticMapping struct {
	Keywords       []string
	TitleSubstring string
}

var semanticMappings = []semanticMapping{
	{Keywords: []string{"pancake", "pancakes", "pannenkoek", "pannenkoeken"}, TitleSubstring: "pannenkoek"},
	{Keywords: []string{"lighthouse", "vuurtoren"}, TitleSubstring: "vuurtoren"},
	{Keywords: []string{"beach club", "beach pavilion", "strandpaviljoen"}, TitleSubstring: "strand"},
	{Keywords: []string{"museum"}, TitleSubstring: "museum"},
	{Keywords: []string{"brewery", "brouwerij"}, TitleSubstring: "brouwerij"},
	{Keywords: []string{"ferry", "veerboot", "boot"}, TitleSubstring: "veer"},
}

func NewContextResolver() *ContextResolver {
	return &ContextResolver{
		// Suffixed ordinals ("10th", "10e") or an explicit "number 10" /
		// "nummer 10" phrase. A bare integer is not an ordinal: house
		// numbers and clock times must not turn into positional references.
		ordinalNumeric: regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th|e)\b|\b(?:number|nummer)\s+(\d+)\b`),
	}
}

// ResolvePositionalReference matches ordinal phrases ("the first one",
// "2nd", "laatste") and returns the result at the bound index, or nil when
// the index is out of range or nothing matches.
func (r *ContextResolver) ResolvePositionalReference(query string, previousResults []models.POIResult) *models.POIResult {
	if len(previousResults) == 0 {
		return nil
	}
	lower := strings.ToLower(query)

	idx := -2
	for _, pat := range ordinalPatterns {
		for _, phrase := range pat.Phrases {
			if strings.Contains(lower, phrase) {
				idx = pat.Index
				break
			}
		}
		if idx != -2 {
			break
		}
	}
	if idx == -2 {
		if m := r.ordinalNumeric.FindStringSubmatch(lower); m != nil {
			digits := m[1]
			if digits == "" {
				digits = m[2]
			}
			n, err := strconv.Atoi(digits)
			if err != nil || n < 1 {
				return nil
			}
			idx = n - 1
		}
	}

	switch {
	case idx == -2:
		return nil
	case idx == -1:
		return &previousResults[len(previousResults)-1]
	case idx >= 0 && idx < len(previousResults):
		return &previousResults[idx]
	default:
		return nil
	}
}

// ResolveSemanticReference looks the query up in the closed keyword table and
// returns the first previous result whose title contains the bound substring.
func (r *ContextResolver) ResolveSemanticReference(query string, previousResults []models.POIResult) *models.POIResult {
	lower := strings.ToLower(query)
	for _, mapping := range semanticMappings {
		matched := false
		for _, kw := range mapping.Keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for i := range previousResults {
			if strings.Contains(strings.ToLower(previousResults[i].Title), mapping.TitleSubstring) {
				return &previousResults[i]
			}
		}
	}
	return nil
}

// ResolveDirectPOIMention returns the first previous result whose title
// appears, case-folded, as a substring of the query.
func (r *ContextResolver) ResolveDirectPOIMention(query string, previousResults []models.POIResult) *models.POIResult {
	lower := strings.ToLower(query)
	for i := range previousResults {
		title := strings.ToLower(previousResults[i].Title)
		if title != "" && strings.Contains(lower, title) {
			return &previousResults[i]
		}
	}
	return nil
}

// Resolve tries the three strategies in priority order and short-circuits on
// the first hit.
func (r *ContextResolver) Resolve(query string, previousResults []models.POIResult) *ResolvedReference {
	if poi := r.ResolvePositionalReference(query, previousResults); poi != nil {
		return &ResolvedReference{POI: poi, Strategy: StrategyPositional}
	}
	if poi := r.ResolveSemanticReference(query, previousResults); poi != nil {
		return &ResolvedReference{POI: poi, Strategy: StrategySemantic}
	}
	if poi := r.ResolveDirectPOIMention(query, previousResults); poi != nil {
		return &ResolvedReference{POI: poi, Strategy: StrategyDirect}
	}
	return nil
}
