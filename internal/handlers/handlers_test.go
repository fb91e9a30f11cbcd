package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studymate-backend/internal/models"
	"studymate-backend/internal/services"
)

// ─── Fakes behind the service ports ───

type stubCompleter struct {
	completion string
	err        error
}

func (s *stubCompleter) Complete(_ context.Context, _ services.PromptRequest) (string, error) {
	return s.completion, s.err
}

type memStore struct {
	records []models.StudyRecord
}

func (m *memStore) InsertRecord(_ context.Context, rec *models.StudyRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *memStore) ListTopics(_ context.Context, userID uuid.UUID) ([]string, error) {
	var topics []string
	for _, rec := range m.records {
		if rec.UserID == userID {
			topics = append(topics, rec.Topic)
		}
	}
	return topics, nil
}

func (m *memStore) GetByTopicAndUser(_ context.Context, topic string, userID uuid.UUID) ([]models.StudyRecord, error) {
	var out []models.StudyRecord
	for _, rec := range m.records {
		if rec.Topic == topic && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) GetByTopic(_ context.Context, topic string) ([]models.StudyRecord, error) {
	var out []models.StudyRecord
	for _, rec := range m.records {
		if rec.Topic == topic {
			out = append(out, rec)
		}
	}
	return out, nil
}

type noopSearcher struct{}

func (noopSearcher) Search(_ context.Context, _ string, _ int64) ([]models.Video, error) {
	return nil, nil
}

func newTestRouter(llm services.Completer, store services.StudyStore) http.Handler {
	svc := services.NewStudyService(llm, store, noopSearcher{})
	h := NewStudyHandler(svc, services.NewFileExtractService())

	r := chi.NewRouter()
	r.Post("/api/save-qa", h.SaveQA)
	r.Get("/api/topics/{userID}", h.Topics)
	r.Get("/api/qa/{topic}/{userID}", h.GetQA)
	r.Get("/api/quiz/{topic}", h.GetQuiz)
	r.Post("/api/check-answer", h.CheckAnswer)
	return r
}

// ─── Tests ───

func TestSaveQAHandler_Saves(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(&stubCompleter{}, store)

	body, _ := json.Marshal(models.SaveQARequest{
		Topic:  "Biology",
		UserID: uuid.New(),
		QAPairs: []models.QAPair{
			{QuestionNum: 1, Question: "q1", Answer: "a1"},
			{QuestionNum: 2, Question: "q2", Answer: "a2"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/save-qa", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(store.records) != 2 {
		t.Errorf("Expected 2 stored records, got %d", len(store.records))
	}
	if !strings.Contains(rr.Body.String(), "Saved successfully") {
		t.Errorf("Unexpected body: %s", rr.Body.String())
	}
}

func TestSaveQAHandler_MissingTopic(t *testing.T) {
	router := newTestRouter(&stubCompleter{}, &memStore{})

	body := []byte(`{"user_id":"` + uuid.NewString() + `","qa_pairs":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/save-qa", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestTopicsHandler_DeduplicatedSet(t *testing.T) {
	userID := uuid.New()
	store := &memStore{records: []models.StudyRecord{
		{UserID: userID, Topic: "Biology", QuestionNum: 1},
		{UserID: userID, Topic: "Biology", QuestionNum: 2},
		{UserID: userID, Topic: "Chemistry", QuestionNum: 1},
	}}
	router := newTestRouter(&stubCompleter{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/topics/"+userID.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Topics []string `json:"topics"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Topics) != 2 {
		t.Errorf("Expected 2 unique topics, got %v", resp.Topics)
	}
}

func TestTopicsHandler_InvalidUserID(t *testing.T) {
	router := newTestRouter(&stubCompleter{}, &memStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/topics/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestGetQAHandler_EmptyTopicReturnsEmptyList(t *testing.T) {
	router := newTestRouter(&stubCompleter{}, &memStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/qa/Unknown/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty topic, got %d", rr.Code)
	}

	var resp struct {
		QAPairs []models.QA `json:"qa_pairs"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.QAPairs) != 0 {
		t.Errorf("Expected empty list, got %v", resp.QAPairs)
	}
}

func TestGetQuizHandler_EmptyTopicIs404(t *testing.T) {
	router := newTestRouter(&stubCompleter{}, &memStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/Unknown", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for empty quiz topic, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND code, got %q", resp.Error.Code)
	}
}

func TestGetQuizHandler_ReturnsOrderedQuestions(t *testing.T) {
	store := &memStore{records: []models.StudyRecord{
		{UserID: uuid.New(), Topic: "Biology", QuestionNum: 1, Question: "q1", Answer: "a1"},
		{UserID: uuid.New(), Topic: "Biology", QuestionNum: 2, Question: "q2", Answer: "a2"},
	}}
	router := newTestRouter(&stubCompleter{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/Biology", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Questions) != 2 || resp.Questions[0].QuestionNum != 1 {
		t.Errorf("Unexpected questions: %+v", resp.Questions)
	}
}

func TestCheckAnswerHandler_ReturnsVerdict(t *testing.T) {
	llm := &stubCompleter{completion: `{"is_correct": true, "feedback": "Good job"}`}
	router := newTestRouter(llm, &memStore{})

	body, _ := json.Marshal(models.CheckAnswerRequest{
		Question:       "What is the duodenum?",
		ExpectedAnswer: "First part of the small intestine",
		UserAnswer:     "The first section of the small intestine",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/check-answer", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var verdict models.Verdict
	if err := json.NewDecoder(rr.Body).Decode(&verdict); err != nil {
		t.Fatalf("Failed to decode verdict: %v", err)
	}
	if !verdict.IsCorrect || verdict.Feedback != "Good job" {
		t.Errorf("Unexpected verdict: %+v", verdict)
	}
}

func TestCheckAnswerHandler_MalformedVerdictIs500(t *testing.T) {
	llm := &stubCompleter{completion: "not json at all"}
	router := newTestRouter(llm, &memStore{})

	body, _ := json.Marshal(models.CheckAnswerRequest{
		Question:       "Q",
		ExpectedAnswer: "E",
		UserAnswer:     "U",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/check-answer", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for malformed verdict, got %d", rr.Code)
	}
}

func TestCheckAnswerHandler_MissingFields(t *testing.T) {
	router := newTestRouter(&stubCompleter{}, &memStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/check-answer", strings.NewReader(`{"question":"only"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}
