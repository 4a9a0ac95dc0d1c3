package db_models

// Question is one entry of the static question bank. Loaded once at startup
// and immutable afterwards except through the admin endpoints.
type Question struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Choices  []string `json:"choices,omitempty"`
}
