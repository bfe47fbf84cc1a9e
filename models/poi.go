package models

import "time"

// TimeRange is a single open/close window, times as "HH:MM" local.
type TimeRange struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// OpeningHours maps lowercase weekday names ("monday".."sunday") to open windows.
// A missing day means unknown; an empty slice means closed all day.
type OpeningHours map[string][]TimeRange

// POICandidate is one point of interest as delivered by the retrieval layer,
// together with its upstream semantic similarity score in [0,1].
// Candidates are read-only inputs; ranking produces POIResult copies.
type POICandidate struct {
	ID             string        `bson:"_id" json:"id"`
	Collection     string        `bson:"collection,omitempty" json:"-"`
	Title          string        `bson:"title" json:"title"`
	Category       string        `bson:"category" json:"category"`
	Subcategory    string        `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Description    string        `bson:"description,omitempty" json:"description,omitempty"`
	Location       *GeoPoint     `bson:"location,omitempty" json:"location,omitempty"`
	Rating         *float64      `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount    int           `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	VisitCount     int           `bson:"visitCount,omitempty" json:"visitCount,omitempty"`
	LastReviewDate *time.Time    `bson:"lastReviewDate,omitempty" json:"lastReviewDate,omitempty"`
	OpeningHours   OpeningHours  `bson:"openingHours,omitempty" json:"openingHours,omitempty"`
	Amenities      []string      `bson:"amenities,omitempty" json:"amenities,omitempty"`
	QAContent      string        `bson:"qaContent,omitempty" json:"qaContent,omitempty"`
	Embedding      []float32     `bson:"embedding,omitempty" json:"-"`
	Similarity     float64       `bson:"-" json:"similarity"`
}

// Display reasons attached to ranked results.
const (
	DisplayReasonRequested    = "requested"
	DisplayReasonAlternative  = "alternative"
	DisplayReasonSearchResult = "search_result"
	DisplayReasonRelevant     = "relevant"
)

// POIResult is a scored, annotated copy of a candidate, valid for one request.
type POIResult struct {
	POICandidate
	SmartScore          float64            `json:"smartScore"`
	ScoreBreakdown      map[string]float64 `json:"scoreBreakdown,omitempty"`
	SearchType          string             `json:"searchType"`
	DisplayAsCard       bool               `json:"displayAsCard"`
	DisplayReason       string             `json:"displayReason"`
	PreviouslyDisplayed bool               `json:"previouslyDisplayed"`
	ResponseText        string             `json:"responseText,omitempty"`
}

// UserContext carries per-request user signals. Never persisted.
type UserContext struct {
	Location      *GeoPoint      `json:"location,omitempty"`
	CurrentTime   *time.Time     `json:"currentTime,omitempty"`
	Entities      []string       `json:"entities,omitempty"`
	DietaryIntent *DietaryIntent `json:"dietaryIntent,omitempty"`
	GeneralIntent *IntentResult  `json:"generalIntent,omitempty"`
}

// Now returns the injected request time, falling back to the wall clock.
func (u *UserContext) Now() time.Time {
	if u != nil && u.CurrentTime != nil {
		return *u.CurrentTime
	}
	return time.Now()
}
