package models

// DietaryIntent is the outcome of dietary keyword detection on a query.
type DietaryIntent struct {
	Detected   bool     `json:"detected"`
	Category   string   `json:"category,omitempty"` // e.g. "vegetarian", "vegan", "gluten-free", "halal"
	Keywords   []string `json:"keywords,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Intent is one matched entry from the general intent table.
type Intent struct {
	Label       string  `json:"label"`
	Boost       float64 `json:"boost"`
	Description string  `json:"description,omitempty"`
}

// IntentResult aggregates all general-intent matches for a query.
// Primary is the match with the highest boost factor; Secondary holds the rest
// in table order.
type IntentResult struct {
	Primary          *Intent  `json:"primary,omitempty"`
	Secondary        []Intent `json:"secondary,omitempty"`
	Confidence       float64  `json:"confidence"`
	SuggestedActions []string `json:"suggestedActions,omitempty"`
}
