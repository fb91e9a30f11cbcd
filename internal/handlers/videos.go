package handlers

import (
	"net/http"

	"studymate-backend/internal/services"
)

type VideoHandler struct {
	study *services.StudyService
}

func NewVideoHandler(study *services.StudyService) *VideoHandler {
	return &VideoHandler{study: study}
}

// Search extracts study topics from posted text and returns one flattened
// video list, all of topic 1's results before topic 2's.
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text is required", r))
		return
	}

	topics, videos, err := h.study.FindVideos(r.Context(), text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch videos", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"topics": topics,
		"videos": videos,
	})
}
