package models

import "github.com/google/uuid"

type SaveQARequest struct {
	Topic   string    `json:"topic"`
	UserID  uuid.UUID `json:"user_id"`
	QAPairs []QAPair  `json:"qa_pairs"`
}

type CheckAnswerRequest struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	UserAnswer     string `json:"user_answer"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
