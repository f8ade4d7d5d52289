package server

import "news-agent/internal/models"

type initializeRequest struct {
	UserID      string                    `json:"userId"`
	Preferences *models.PreferencesUpdate `json:"preferences,omitempty"`
}

type userRequest struct {
	UserID    string `json:"userId"`
	UserInput string `json:"userInput"`
}

type analyzeRequest struct {
	Articles []models.Article `json:"articles"`
	Prompt   string           `json:"prompt"`
}

type preferencesRequest struct {
	Preferences models.PreferencesUpdate `json:"preferences"`
}

// errorResponse is the failure envelope shared by every route.
type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func newErrorResponse(message string, details ...string) errorResponse {
	return errorResponse{Success: false, Error: message, Details: details}
}
