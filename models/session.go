package models

import "time"

// ConversationTurn is one entry of the per-session conversation history.
type ConversationTurn struct {
	Query     string    `json:"query"`
	ResultIDs []string  `json:"resultIds"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionContext is the persistent per-conversation state, keyed by session ID.
// It lives in the session cache (Redis or in-process) and is replaced wholesale
// at the end of each request that touches it.
type SessionContext struct {
	SessionID           string             `json:"sessionId"`
	UserID              string             `json:"userId,omitempty"`
	ConversationHistory []ConversationTurn `json:"conversationHistory"`
	LastQuery           string             `json:"lastQuery,omitempty"`
	LastResults         []POIResult        `json:"lastResults,omitempty"`
	DisplayedPOIs       []string           `json:"displayedPois"`
	LastDisplayedPOIs   []string           `json:"lastDisplayedPois"`
	ConversationTurn    int                `json:"conversationTurn"`
	CreatedAt           time.Time          `json:"createdAt"`
	LastAccessed        time.Time          `json:"lastAccessed"`
}

// HasDisplayed reports whether the POI id was shown in any prior turn.
func (s *SessionContext) HasDisplayed(poiID string) bool {
	for _, id := range s.DisplayedPOIs {
		if id == poiID {
			return true
		}
	}
	return false
}
