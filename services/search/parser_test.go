package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := NewQueryParser()

	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		assert.Equal(t, "waar kan ik pannenkoeken eten", p.Normalize("Waar kan ik pannenkoeken eten?!"))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "best beach bars", p.Normalize("  Best   beach\tbars  "))
	})

	t.Run("idempotent", func(t *testing.T) {
		queries := []string{
			"Is 'De Vuurtoren' open on Sunday??",
			"  RESTAURANTS!!  ",
			"wat is er te doen, vandaag?",
		}
		for _, q := range queries {
			once := p.Normalize(q)
			assert.Equal(t, once, p.Normalize(once))
		}
	})
}

func TestExtractEntities(t *testing.T) {
	p := NewQueryParser()

	t.Run("drops stop words and short tokens", func(t *testing.T) {
		entities := p.ExtractEntities("Where can you eat vegetarian pancakes in De Koog")
		for _, e := range entities {
			assert.False(t, stopWords[e], "stop word leaked: %s", e)
			assert.Greater(t, len(e), 2)
		}
		assert.Contains(t, entities, "vegetarian")
		assert.Contains(t, entities, "pancakes")
	})

	t.Run("strips non-word characters from tokens", func(t *testing.T) {
		entities := p.ExtractEntities("restaurants, bars & cafes!")
		assert.Equal(t, []string{"restaurants", "bars", "cafes"}, entities)
	})

	t.Run("retains duplicates in first-occurrence order", func(t *testing.T) {
		entities := p.ExtractEntities("beach beach club")
		assert.Equal(t, []string{"beach", "beach", "club"}, entities)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, p.ExtractEntities(""))
	})
}

func TestDetectLanguage(t *testing.T) {
	p := NewQueryParser()

	t.Run("english", func(t *testing.T) {
		assert.Equal(t, LanguageEnglish, p.DetectLanguage("Where is the best restaurant near the beach"))
	})

	t.Run("dutch", func(t *testing.T) {
		assert.Equal(t, LanguageDutch, p.DetectLanguage("Waar kan ik een pannenkoek eten"))
	})

	t.Run("defaults to dutch on tie", func(t *testing.T) {
		assert.Equal(t, LanguageDutch, p.DetectLanguage("pizza"))
	})
}

func TestExtractLocation(t *testing.T) {
	p := NewQueryParser()

	t.Run("english in-phrase", func(t *testing.T) {
		assert.Equal(t, "De Koog", p.ExtractLocation("restaurants in De Koog"))
	})

	t.Run("first pattern wins", func(t *testing.T) {
		// "in" is listed before "near", so it captures first.
		assert.Equal(t, "Den Burg", p.ExtractLocation("food in Den Burg"))
	})

	t.Run("dutch bij-phrase", func(t *testing.T) {
		assert.Equal(t, "de vuurtoren", p.ExtractLocation("eten bij de vuurtoren"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, "", p.ExtractLocation("restaurants"))
	})
}
