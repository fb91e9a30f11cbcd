package handlers

import (
	"net/http"

	"studymate-backend/internal/services"
)

type ExamHandler struct {
	study *services.StudyService
}

func NewExamHandler(study *services.StudyService) *ExamHandler {
	return &ExamHandler{study: study}
}

// Generate produces a sample exam from posted text. The document is returned
// directly and never persisted.
func (h *ExamHandler) Generate(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text is required", r))
		return
	}

	doc, err := h.study.GenerateExam(r.Context(), text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate exam", r))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// AnswerQuestion answers a question using only the posted text.
func (h *ExamHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	question := r.FormValue("question")
	if text == "" || question == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text and question are required", r))
		return
	}

	answer, err := h.study.AnswerQuestion(r.Context(), text, question)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to answer question", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
