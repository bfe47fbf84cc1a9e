package session

import (
	"context"
	"errors"
	"time"

	"placewise/models"
)

// ErrSessionNotFound is returned when no context exists for a session ID.
var ErrSessionNotFound = errors.New("session context not found")

// ContextStore owns per-session conversational state behind a get/set/expire
// key-value backend. Update applies the mutation as one atomic
// read-modify-write per session; idle sessions are reaped by the backend's
// own TTL, never by an engine-side sweep.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionContext, error)
	Create(ctx context.Context, sessionID, userID string) (*models.SessionContext, error)
	Update(ctx context.Context, sessionID string, mutate func(*models.SessionContext)) (*models.SessionContext, error)
	Touch(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

func newSessionContext(sessionID, userID string, now time.Time) *models.SessionContext {
	return &models.SessionContext{
		SessionID:           sessionID,
		UserID:              userID,
		ConversationHistory: []models.ConversationTurn{},
		DisplayedPOIs:       []string{},
		LastDisplayedPOIs:   []string{},
		CreatedAt:           now,
		LastAccessed:        now,
	}
}

// applyCaps enforces FIFO eviction on the capped collections.
func applyCaps(sc *models.SessionContext, maxHistory int) {
	if maxHistory <= 0 {
		return
	}
	if n := len(sc.ConversationHistory); n > maxHistory {
		sc.ConversationHistory = sc.ConversationHistory[n-maxHistory:]
	}
	if n := len(sc.DisplayedPOIs); n > maxHistory {
		sc.DisplayedPOIs = sc.DisplayedPOIs[n-maxHistory:]
	}
}
