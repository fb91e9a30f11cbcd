package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studymate-backend/internal/models"
	"studymate-backend/internal/services"
)

const maxUploadBytes = 20 << 20 // 20MB

type StudyHandler struct {
	study     *services.StudyService
	extractor *services.FileExtractService
}

func NewStudyHandler(study *services.StudyService, extractor *services.FileExtractService) *StudyHandler {
	return &StudyHandler{study: study, extractor: extractor}
}

// Upload accepts a study document plus topic and user id, extracts its text,
// and returns generated Q&A pairs. Nothing is persisted until save-qa.
func (h *StudyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	topic := r.FormValue("topic")
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Topic is required", r))
		return
	}
	if _, err := uuid.Parse(r.FormValue("user_id")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "File is required", r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(data) > maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "File too large or unreadable", r))
		return
	}

	text, err := h.extractor.ExtractText(header.Filename, data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return
	}

	pairs, err := h.study.GenerateQA(r.Context(), text, topic)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error generating Q&A", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"qa_pairs": pairs})
}

// SaveQA persists a batch of pairs under (user, topic). Saves append; an
// insert failure mid-batch leaves the earlier rows in place.
func (h *StudyHandler) SaveQA(w http.ResponseWriter, r *http.Request) {
	var req models.SaveQARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Topic == "" || req.UserID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Topic and user ID are required", r))
		return
	}

	if err := h.study.SaveQA(r.Context(), req.UserID, req.Topic, req.QAPairs); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save Q&A", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Saved successfully"})
}

// Topics returns the user's deduplicated topic set.
func (h *StudyHandler) Topics(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	topics, err := h.study.ListTopics(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch topics", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics.Values()})
}

// GetQA returns the user's saved pairs for a topic in question order. An
// unknown topic is an empty list, not an error.
func (h *StudyHandler) GetQA(w http.ResponseWriter, r *http.Request) {
	topic, err := url.PathUnescape(chi.URLParam(r, "topic"))
	if err != nil || topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid topic", r))
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	pairs, err := h.study.GetQA(r.Context(), topic, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch Q&A", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"qa_pairs": pairs})
}

// GetQuiz returns every saved pair for a topic across users. A topic with no
// rows is a 404, unlike GetQA.
func (h *StudyHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	topic, err := url.PathUnescape(chi.URLParam(r, "topic"))
	if err != nil || topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid topic", r))
		return
	}

	questions, err := h.study.GetQuiz(r.Context(), topic)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No questions found for this topic", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch quiz questions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// CheckAnswer grades a student's answer. A completion the verdict parser
// cannot decode surfaces as an internal error, never a defaulted verdict.
func (h *StudyHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.CheckAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Question == "" || req.ExpectedAnswer == "" || req.UserAnswer == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question, expected answer and user answer are required", r))
		return
	}

	verdict, err := h.study.CheckAnswer(r.Context(), req.Question, req.ExpectedAnswer, req.UserAnswer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to evaluate answer", r))
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
