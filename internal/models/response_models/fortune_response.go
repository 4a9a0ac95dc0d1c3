package response_models

import (
	"mirrormirror/internal/models/db_models"
)

// SubmitResponse mirrors what the quiz client renders after posting answers:
// the fortune itself plus the per-trait hint lines and astrology context.
type SubmitResponse struct {
	Fortune        string            `json:"fortune"`
	Profile        db_models.Profile `json:"profile"`
	Hints          map[string]string `json:"hints,omitempty"`
	SessionMetrics *SessionMetrics   `json:"session_metrics,omitempty"`
	Timestamp      string            `json:"timestamp"`
}

type SessionMetrics struct {
	SessionStart string `json:"session_start,omitempty"`
	Submissions  int    `json:"submissions"`
}

type FortuneDataResponse struct {
	Fortune string `json:"fortune"`
}

type HistoryResponse struct {
	History []db_models.FortuneRecord `json:"history"`
}

type ResultsExportResponse struct {
	Results []db_models.FortuneRecord `json:"results"`
}

type AnalyticsResponse struct {
	TotalSubmissions   int            `json:"total_submissions"`
	TopNames           []NameCount    `json:"top_names"`
	ZodiacDistribution map[string]int `json:"zodiac_distribution"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AstrologyResponse struct {
	Zodiac  string `json:"zodiac"`
	Element string `json:"element"`
	Hint    string `json:"hint"`
}
