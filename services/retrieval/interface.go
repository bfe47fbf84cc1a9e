package retrieval

import (
	"context"

	"placewise/models"
)

// Embedder turns query text into a vector. Implementations wrap an external
// embedding API.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Name() string
}

// SemanticRetriever returns similarity-ranked POI candidates for a query and
// a logical collection name. Candidates carry their similarity score in
// [0,1]; ranking beyond similarity is the search engine's job.
type SemanticRetriever interface {
	Retrieve(ctx context.Context, query, collection string, limit int) ([]models.POICandidate, error)
	EmbeddingType() string
	Ping(ctx context.Context) error
}
