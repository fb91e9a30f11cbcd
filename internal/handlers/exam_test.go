package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"studymate-backend/internal/services"
)

func newExamRouter(llm services.Completer) http.Handler {
	svc := services.NewStudyService(llm, &memStore{}, noopSearcher{})
	h := NewExamHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/generate-exam", h.Generate)
	r.Post("/api/answer-question", h.AnswerQuestion)
	return r
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGenerateExamHandler(t *testing.T) {
	llm := &stubCompleter{completion: "FILL IN THE BLANKS:\n1. X\n---ANSWERS---\n1. Y"}
	router := newExamRouter(llm)

	rr := postForm(t, router, "/api/generate-exam", url.Values{"text": {"digestive system notes"}})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "FILL IN THE BLANKS") {
		t.Errorf("Missing questions blob in %s", body)
	}
	if strings.Contains(body, "---ANSWERS---") {
		t.Errorf("Delimiter should not leak into the response: %s", body)
	}
}

func TestGenerateExamHandler_MissingText(t *testing.T) {
	router := newExamRouter(&stubCompleter{})

	rr := postForm(t, router, "/api/generate-exam", url.Values{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestAnswerQuestionHandler(t *testing.T) {
	llm := &stubCompleter{completion: "  The duodenum is the first part of the small intestine.\n"}
	router := newExamRouter(llm)

	rr := postForm(t, router, "/api/answer-question", url.Values{
		"text":     {"The small intestine has three parts."},
		"question": {"What is the duodenum?"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "The duodenum is the first part") {
		t.Errorf("Unexpected body: %s", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "\"answer\":\"  ") {
		t.Error("Answer should be trimmed")
	}
}
