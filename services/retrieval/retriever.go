package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	poiRepo "placewise/database/repository/poi"
	"placewise/models"
)

// MongoSemanticRetriever ranks stored POIs against the query embedding by
// cosine similarity. When no embedder is configured it falls back to the
// repository's lexical text search with rank-based similarity scores.
type MongoSemanticRetriever struct {
	repo     poiRepo.POIRepository
	embedder Embedder
	// fetchLimit bounds how many stored candidates are loaded per query
	// before similarity ranking.
	fetchLimit int
}

func NewMongoSemanticRetriever(repo poiRepo.POIRepository, embedder Embedder) *MongoSemanticRetriever {
	return &MongoSemanticRetriever{repo: repo, embedder: embedder, fetchLimit: 500}
}

func (r *MongoSemanticRetriever) EmbeddingType() string {
	if r.embedder == nil {
		return "lexical"
	}
	return r.embedder.Name()
}

func (r *MongoSemanticRetriever) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}

// Retrieve returns up to limit candidates ordered by descending similarity,
// each carrying its similarity in [0,1].
func (r *MongoSemanticRetriever) Retrieve(ctx context.Context, query, collection string, limit int) ([]models.POICandidate, error) {
	if r.embedder == nil {
		return r.lexicalRetrieve(ctx, query, collection, limit)
	}

	queryVec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := r.repo.FetchCandidates(ctx, collection, r.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	scored := candidates[:0]
	for _, c := range candidates {
		if len(c.Embedding) == 0 {
			continue
		}
		// Map cosine similarity from [-1,1] to [0,1].
		c.Similarity = (cosineSimilarity(queryVec, c.Embedding) + 1) / 2
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// lexicalRetrieve maps text-search rank order onto a decaying similarity so
// downstream scoring sees comparable inputs.
func (r *MongoSemanticRetriever) lexicalRetrieve(ctx context.Context, query, collection string, limit int) ([]models.POICandidate, error) {
	candidates, err := r.repo.TextSearch(ctx, collection, query, limit)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	for i := range candidates {
		candidates[i].Similarity = 1.0 / (1.0 + float64(i)*0.1)
	}
	return candidates, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
