package search

import (
	"context"

	"placewise/models"
	"placewise/services/intent"
	"placewise/services/retrieval"
	"placewise/services/scoring"
	"placewise/services/session"
)

// SearchService is the conversational POI search orchestrator.
type SearchService interface {
	Search(ctx context.Context, req models.SearchRequest) *models.SearchResponse
	ResetSession(ctx context.Context, sessionID string) error
	GetServiceStatus(ctx context.Context) models.ServiceStatus
}

// DefaultSearchService implements SearchService.
type DefaultSearchService struct {
	Parser    *QueryParser
	Resolver  *ContextResolver
	Dietary   intent.DietaryIntentService
	General   intent.GeneralIntentService
	Scoring   scoring.ScoringService
	Retriever retrieval.SemanticRetriever
	Sessions  session.ContextStore

	// MaxResults is the default result cap when the request carries none.
	MaxResults int
	// Collection is the logical POI collection queried upstream.
	Collection string
}
