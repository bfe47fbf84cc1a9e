package search

import (
	"testing"

	"placewise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previousResults(titles ...string) []models.POIResult {
	results := make([]models.POIResult, 0, len(titles))
	for i, title := range titles {
		results = append(results, models.POIResult{
			POICandidate: models.POICandidate{ID: string(rune('a' + i)), Title: title},
		})
	}
	return results
}

func TestResolvePositionalReference(t *testing.T) {
	r := NewContextResolver()
	prev := previousResults("Strandpaviljoen Paal 17", "Pannenkoekenhuis De Duinen", "Vuurtoren Texel")

	t.Run("the second one", func(t *testing.T) {
		poi := r.ResolvePositionalReference("is the second one open?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Pannenkoekenhuis De Duinen", poi.Title)
	})

	t.Run("the last one", func(t *testing.T) {
		poi := r.ResolvePositionalReference("tell me about the last one", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Vuurtoren Texel", poi.Title)
	})

	t.Run("dutch ordinal", func(t *testing.T) {
		poi := r.ResolvePositionalReference("is de eerste nu geopend?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Strandpaviljoen Paal 17", poi.Title)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Nil(t, r.ResolvePositionalReference("what about the 10th one", prev))
	})

	t.Run("suffixed numeric ordinal", func(t *testing.T) {
		poi := r.ResolvePositionalReference("show me the 2nd again", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Pannenkoekenhuis De Duinen", poi.Title)
	})

	t.Run("dutch numeric ordinal", func(t *testing.T) {
		poi := r.ResolvePositionalReference("wat is de 3e ook alweer?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Vuurtoren Texel", poi.Title)
	})

	t.Run("explicit number phrase", func(t *testing.T) {
		poi := r.ResolvePositionalReference("tell me about number 2", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Pannenkoekenhuis De Duinen", poi.Title)

		poi = r.ResolvePositionalReference("wat is nummer 3?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Vuurtoren Texel", poi.Title)
	})

	t.Run("bare integers are not ordinals", func(t *testing.T) {
		// House numbers and clock times must not bind a position.
		assert.Nil(t, r.ResolvePositionalReference("is the bar at paal 3 open after 9?", prev))
		assert.Nil(t, r.ResolvePositionalReference("is it open until 2?", prev))
	})

	t.Run("no ordinal", func(t *testing.T) {
		assert.Nil(t, r.ResolvePositionalReference("any vegan places nearby?", prev))
	})

	t.Run("empty previous results", func(t *testing.T) {
		assert.Nil(t, r.ResolvePositionalReference("the first one", nil))
	})
}

func TestResolveSemanticReference(t *testing.T) {
	r := NewContextResolver()
	prev := previousResults("Strandpaviljoen Paal 17", "Pannenkoekenhuis De Duinen", "Vuurtoren Texel")

	t.Run("pancake keyword resolves pannenkoekenhuis", func(t *testing.T) {
		poi := r.ResolveSemanticReference("is the pancake place open today?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Pannenkoekenhuis De Duinen", poi.Title)
	})

	t.Run("lighthouse keyword resolves vuurtoren", func(t *testing.T) {
		poi := r.ResolveSemanticReference("how do I get to the lighthouse?", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Vuurtoren Texel", poi.Title)
	})

	t.Run("keyword without matching title", func(t *testing.T) {
		assert.Nil(t, r.ResolveSemanticReference("is there a museum nearby?", prev))
	})
}

func TestResolveDirectPOIMention(t *testing.T) {
	r := NewContextResolver()
	prev := previousResults("Casa Pepe", "Strandpaviljoen Paal 17")

	t.Run("case-insensitive title substring", func(t *testing.T) {
		poi := r.ResolveDirectPOIMention("tell me about casa pepe hours", prev)
		require.NotNil(t, poi)
		assert.Equal(t, "Casa Pepe", poi.Title)
	})

	t.Run("no mention", func(t *testing.T) {
		assert.Nil(t, r.ResolveDirectPOIMention("any good seafood?", prev))
	})
}

func TestResolvePriorityOrder(t *testing.T) {
	r := NewContextResolver()
	prev := previousResults("Casa Pepe", "Pannenkoekenhuis De Duinen")

	// Positional beats direct mention when both could apply.
	ref := r.Resolve("is the second one better than casa pepe?", prev)
	require.NotNil(t, ref)
	assert.Equal(t, StrategyPositional, ref.Strategy)
	assert.Equal(t, "Pannenkoekenhuis De Duinen", ref.POI.Title)

	// Direct mention is the fallback once no ordinal or keyword matches.
	ref = r.Resolve("opening hours casa pepe please", prev)
	require.NotNil(t, ref)
	assert.Equal(t, StrategyDirect, ref.Strategy)

	// A bare integer must not shadow the other strategies.
	ref = r.Resolve("is the pancake place at paal 19 open?", prev)
	require.NotNil(t, ref)
	assert.Equal(t, StrategySemantic, ref.Strategy)
	assert.Equal(t, "Pannenkoekenhuis De Duinen", ref.POI.Title)

	ref = r.Resolve("is casa pepe open until 2?", prev)
	require.NotNil(t, ref)
	assert.Equal(t, StrategyDirect, ref.Strategy)
}
