package poiRepo

import (
	"context"

	"placewise/models"
)

// POIRepository is the access contract of the POI metadata store.
type POIRepository interface {
	GetByID(ctx context.Context, id string) (*models.POICandidate, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.POICandidate, error)
	// FetchCandidates loads POIs of one collection, including stored
	// embedding vectors, for similarity ranking by the retrieval layer.
	FetchCandidates(ctx context.Context, collection string, limit int) ([]models.POICandidate, error)
	// TextSearch runs the Mongo text index as a lexical fallback when no
	// embedding provider is available.
	TextSearch(ctx context.Context, collection, query string, limit int) ([]models.POICandidate, error)
	Ping(ctx context.Context) error
}
