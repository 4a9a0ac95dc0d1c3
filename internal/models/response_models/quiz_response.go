package response_models

import "mirrormirror/internal/models/db_models"

type QuizDataResponse struct {
	Questions []db_models.Question `json:"questions"`
}

type FollowupResponse struct {
	Questions []db_models.Question `json:"questions"`
}

type AddQuestionResponse struct {
	Added db_models.Question `json:"added"`
}

type ReloadQuestionsResponse struct {
	Count int `json:"count"`
}
