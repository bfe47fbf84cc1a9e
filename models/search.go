package models

// Search types assigned by the orchestrator.
const (
	SearchTypeAuto       = "auto"
	SearchTypeGeneral    = "general"
	SearchTypeSpecific   = "specific"
	SearchTypeContextual = "contextual"
)

// ClientContext is conversational state supplied by the client. When present,
// it takes precedence over server-held session state since it reflects exactly
// what the user currently sees.
type ClientContext struct {
	LastQuery           string             `json:"lastQuery,omitempty"`
	LastResults         []POIResult        `json:"lastResults,omitempty"`
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
}

// PreviousContext is the older single-turn context shape, kept for widget
// clients that only echo back the preceding turn.
type PreviousContext struct {
	PreviousQuery   string      `json:"previousQuery,omitempty"`
	PreviousResults []POIResult `json:"previousResults,omitempty"`
}

// SearchOptions tunes a single search request.
type SearchOptions struct {
	MaxResults      int    `json:"maxResults,omitempty"`
	IncludeMetadata bool   `json:"includeMetadata,omitempty"`
	SearchType      string `json:"searchType,omitempty"` // forces a mode when set
}

// SearchRequest is the payload coming into /api/search.
type SearchRequest struct {
	Query         string           `json:"query" binding:"required"`
	SessionID     string           `json:"sessionId" binding:"required"`
	UserID        string           `json:"userId,omitempty"`
	Location      *GeoPoint        `json:"location,omitempty"`
	CurrentTime   string           `json:"currentTime,omitempty"` // RFC3339; defaults to now
	ClientContext *ClientContext   `json:"clientContext,omitempty"`
	Context       *PreviousContext `json:"context,omitempty"`
	Options       *SearchOptions   `json:"options,omitempty"`
}

// QueryInterpretation explains how the engine read the query.
type QueryInterpretation struct {
	Normalized    string         `json:"normalized"`
	Entities      []string       `json:"entities,omitempty"`
	Language      string         `json:"language"`
	Location      string         `json:"location,omitempty"`
	DietaryIntent *DietaryIntent `json:"dietaryIntent,omitempty"`
	GeneralIntent *IntentResult  `json:"generalIntent,omitempty"`
}

// SearchData is the success payload of a search response.
type SearchData struct {
	Results             []POIResult         `json:"results"`
	SearchType          string              `json:"searchType"`
	QueryInterpretation QueryInterpretation `json:"queryInterpretation"`
	Context             *SessionContext     `json:"context,omitempty"`
	ResponseText        string              `json:"responseText,omitempty"`
}

// SearchMetadata carries reporting fields alongside the payload.
type SearchMetadata struct {
	TotalResults  int     `json:"totalResults"`
	SearchTimeMS  float64 `json:"searchTime"`
	EmbeddingType string  `json:"embeddingType,omitempty"`
}

// SearchErrorPayload is the structured error of a failed envelope.
type SearchErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchResponse is the full response envelope.
type SearchResponse struct {
	Success  bool                `json:"success"`
	Data     *SearchData         `json:"data,omitempty"`
	Metadata *SearchMetadata     `json:"metadata,omitempty"`
	Error    *SearchErrorPayload `json:"error,omitempty"`
}

// ServiceStatus reports readiness of upstream collaborators.
type ServiceStatus struct {
	Ready     bool   `json:"ready"`
	Database  bool   `json:"database"`
	Cache     bool   `json:"cache"`
	Embedding string `json:"embedding"`
}
