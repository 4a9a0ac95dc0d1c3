package request_models

// SubmitRequest is the final quiz payload posted by the client. Quiz values
// are raw: numeric sliders (1-5), bucket names, or literal choice labels. The
// answer mapper resolves them once at the service boundary.
type SubmitRequest struct {
	Name      string                 `json:"name"`
	Birthdate string                 `json:"birthdate" binding:"required"`
	Quiz      map[string]interface{} `json:"quiz" binding:"required"`
}

type AddQuestionRequest struct {
	ID       int      `json:"id,omitempty"`
	Category string   `json:"category"`
	Text     string   `json:"text" binding:"required"`
	Choices  []string `json:"choices,omitempty"`
}
