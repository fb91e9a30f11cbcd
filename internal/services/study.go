package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studymate-backend/internal/models"
)

// ErrNotFound signals an empty quiz lookup. Note the asymmetry: GetQA returns
// an empty list for the same empty condition. Both behaviors are kept as the
// product defined them.
var ErrNotFound = errors.New("not found")

// maxVideosPerTopic caps each per-topic search.
const maxVideosPerTopic = 5

// StudyStore is the persistence port for saved Q&A rows.
type StudyStore interface {
	InsertRecord(ctx context.Context, rec *models.StudyRecord) error
	ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error)
	GetByTopicAndUser(ctx context.Context, topic string, userID uuid.UUID) ([]models.StudyRecord, error)
	GetByTopic(ctx context.Context, topic string) ([]models.StudyRecord, error)
}

// StudyService drives the generation flows end to end: render prompt, call
// the model, parse the completion, then persist or aggregate.
type StudyService struct {
	llm    Completer
	store  StudyStore
	videos VideoSearcher
}

func NewStudyService(llm Completer, store StudyStore, videos VideoSearcher) *StudyService {
	return &StudyService{llm: llm, store: store, videos: videos}
}

// GenerateQA produces ordered question/answer pairs from source text. The
// model may return fewer or more than the 5 requested; whatever parses
// cleanly is returned.
func (s *StudyService) GenerateQA(ctx context.Context, text, topic string) ([]models.QAPair, error) {
	completion, err := s.llm.Complete(ctx, BuildQAPrompt(text, topic))
	if err != nil {
		return nil, err
	}
	return ParseQAPairs(completion), nil
}

// GenerateExam produces a sample exam document. It is never persisted.
func (s *StudyService) GenerateExam(ctx context.Context, text string) (models.ExamDocument, error) {
	completion, err := s.llm.Complete(ctx, BuildExamPrompt(text))
	if err != nil {
		return models.ExamDocument{}, err
	}
	return ParseExam(completion), nil
}

// AnswerQuestion answers a question strictly from the supplied text.
func (s *StudyService) AnswerQuestion(ctx context.Context, text, question string) (string, error) {
	completion, err := s.llm.Complete(ctx, BuildAnswerPrompt(text, question))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(completion), nil
}

// CheckAnswer grades a student's answer against the expected one. A
// completion that is not the promised JSON object is an error, never a
// defaulted verdict.
func (s *StudyService) CheckAnswer(ctx context.Context, question, expectedAnswer, userAnswer string) (models.Verdict, error) {
	completion, err := s.llm.Complete(ctx, BuildCheckAnswerPrompt(question, expectedAnswer, userAnswer))
	if err != nil {
		return models.Verdict{}, err
	}
	return ParseVerdict(completion)
}

// SaveQA inserts one row per pair. Inserts are individual, not a single
// transaction: a failure at pair K leaves pairs 1..K-1 committed. Saving the
// same topic again appends; there is no upsert.
func (s *StudyService) SaveQA(ctx context.Context, userID uuid.UUID, topic string, pairs []models.QAPair) error {
	for _, p := range pairs {
		rec := &models.StudyRecord{
			UserID:      userID,
			Topic:       topic,
			QuestionNum: p.QuestionNum,
			Question:    p.Question,
			Answer:      p.Answer,
		}
		if err := s.store.InsertRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save question %d: %w", p.QuestionNum, err)
		}
	}
	return nil
}

// ListTopics returns the user's topics as a deduplicated set.
func (s *StudyService) ListTopics(ctx context.Context, userID uuid.UUID) (models.TopicSet, error) {
	topics, err := s.store.ListTopics(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewTopicSet(topics...), nil
}

// GetQA returns the user's pairs for a topic ordered by question number,
// projected without the number. An unknown topic yields an empty list.
func (s *StudyService) GetQA(ctx context.Context, topic string, userID uuid.UUID) ([]models.QA, error) {
	records, err := s.store.GetByTopicAndUser(ctx, topic, userID)
	if err != nil {
		return nil, err
	}
	pairs := make([]models.QA, 0, len(records))
	for _, rec := range records {
		pairs = append(pairs, models.QA{Question: rec.Question, Answer: rec.Answer})
	}
	return pairs, nil
}

// GetQuiz returns all pairs for a topic across users, ordered by question
// number. Unlike GetQA, an empty result is ErrNotFound.
func (s *StudyService) GetQuiz(ctx context.Context, topic string) ([]models.QuizQuestion, error) {
	records, err := s.store.GetByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no questions for topic %q: %w", topic, ErrNotFound)
	}
	questions := make([]models.QuizQuestion, 0, len(records))
	for _, rec := range records {
		questions = append(questions, models.QuizQuestion{
			Question:    rec.Question,
			Answer:      rec.Answer,
			QuestionNum: rec.QuestionNum,
		})
	}
	return questions, nil
}

// FindVideos extracts study topics from text, then runs one search per topic
// in order. Results are concatenated, provider order preserved within each
// topic, with no cross-topic deduplication.
func (s *StudyService) FindVideos(ctx context.Context, text string) ([]string, []models.Video, error) {
	completion, err := s.llm.Complete(ctx, BuildTopicsPrompt(text))
	if err != nil {
		return nil, nil, err
	}
	topics := ParseTopics(completion)

	videos := make([]models.Video, 0, len(topics)*maxVideosPerTopic)
	for _, topic := range topics {
		results, err := s.videos.Search(ctx, topic+" educational", maxVideosPerTopic)
		if err != nil {
			return nil, nil, err
		}
		videos = append(videos, results...)
	}
	return topics, videos, nil
}
