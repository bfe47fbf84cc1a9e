package search

import (
	"regexp"
	"strings"
)

// Detected languages.
const (
	LanguageEnglish = "en"
	LanguageDutch   = "nl"
)

// QueryParser normalizes raw query text and extracts entities, language and
// location phrases. All methods are pure functions of their input.
type QueryParser struct {
	punct        *regexp.Regexp
	spaces       *regexp.Regexp
	nonWord      *regexp.Regexp
	locationPats []*regexp.Regexp
}

// stopWords are dropped from entity extraction (English + Dutch).
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"with": true, "from": true, "this": true, "that": true, "what": true,
	"where": true, "when": true, "which": true, "how": true, "can": true,
	"you": true, "near": true, "nearby": true, "some": true, "any": true,
	"een": true, "het": true, "van": true, "voor": true, "met": true,
	"waar": true, "wat": true, "hoe": true, "wanneer": true, "welke": true,
	"zijn": true, "naar": true, "deze": true, "dat": true, "ook": true,
	"bij": true, "dichtbij": true,
}

// englishKeywords and dutchKeywords drive language detection by substring
// counting. Dutch is the default on a tie or zero matches: the platform's
// home market is Dutch.
var englishKeywords = []string{
	"the ", "where ", "what ", "which ", "open", "near", "restaurant",
	"show me", "is there", "are there", "tell me", "first", "second", "last",
	"best", "closest", "hours",
}

var dutchKeywords = []string{
	"de ", "het ", "een ", "waar ", "wat ", "welke ", "openingstijden",
	"dichtbij", "vlakbij", "eerste", "tweede", "laatste", "geopend",
	"gesloten", "restaurantje", "eten", "laat zien", "is er", "zijn er",
}

// locationPatterns are tried in declared order; the first match wins
// regardless of specificity.
var locationPatterns = []string{
	`(?i)\bin\s+([\p{L}\s]+)$`,
	`(?i)\bnear\s+([\p{L}\s]+)$`,
	`(?i)\bat\s+([\p{L}\s]+)$`,
	`(?i)\bclose\s+to\s+([\p{L}\s]+)$`,
	`(?i)\bbij\s+([\p{L}\s]+)$`,
	`(?i)\bop\s+([\p{L}\s]+)$`,
	`(?i)\bdichtbij\s+([\p{L}\s]+)$`,
	`(?i)\bvlakbij\s+([\p{L}\s]+)$`,
}

func NewQueryParser() *QueryParser {
	pats := make([]*regexp.Regexp, 0, len(locationPatterns))
	for _, p := range locationPatterns {
		pats = append(pats, regexp.MustCompile(p))
	}
	return &QueryParser{
		punct:        regexp.MustCompile(`[^\p{L}\p{N}\s]+`),
		spaces:       regexp.MustCompile(`\s+`),
		nonWord:      regexp.MustCompile(`[^\p{L}\p{N}]+`),
		locationPats: pats,
	}
}

// Normalize lowercases, strips punctuation and collapses whitespace.
// Idempotent: Normalize(Normalize(q)) == Normalize(q).
func (p *QueryParser) Normalize(query string) string {
	out := strings.ToLower(query)
	out = p.punct.ReplaceAllString(out, " ")
	out = p.spaces.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// ExtractEntities tokenizes the lowercased (but not punctuation-stripped)
// query on whitespace, drops short tokens and stop words, then strips
// non-word characters from the survivors. Duplicates and first-occurrence
// order are retained.
func (p *QueryParser) ExtractEntities(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))
	var entities []string
	for _, tok := range tokens {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		cleaned := p.nonWord.ReplaceAllString(tok, "")
		if cleaned == "" {
			continue
		}
		entities = append(entities, cleaned)
	}
	return entities
}

// DetectLanguage counts case-insensitive keyword hits per language and
// returns the strictly more frequent one, defaulting to Dutch.
func (p *QueryParser) DetectLanguage(query string) string {
	lower := strings.ToLower(query)
	en, nl := 0, 0
	for _, kw := range englishKeywords {
		if strings.Contains(lower, kw) {
			en++
		}
	}
	for _, kw := range dutchKeywords {
		if strings.Contains(lower, kw) {
			nl++
		}
	}
	if en > nl {
		return LanguageEnglish
	}
	return LanguageDutch
}

// ExtractLocation tries the prepositional location patterns in order and
// returns the first trimmed capture, or "" when none match.
func (p *QueryParser) ExtractLocation(query string) string {
	for _, pat := range p.locationPats {
		if m := pat.FindStringSubmatch(query); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
