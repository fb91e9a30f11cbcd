package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// QAPair is one generated question/answer with its display position.
// QuestionNum is assigned by the parser, not taken from the model's labels.
type QAPair struct {
	QuestionNum int    `json:"question_num"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

// QA is the stored-retrieval projection of a pair (question_num dropped).
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is the quiz-mode projection, keeping the ordering number.
type QuizQuestion struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	QuestionNum int    `json:"question_num"`
}

// StudyRecord is a persisted Q&A row, keyed by (user_id, topic, question_num).
type StudyRecord struct {
	UserID      uuid.UUID `json:"user_id"`
	Topic       string    `json:"topic"`
	QuestionNum int       `json:"question_num"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExamDocument is a generated exam: two lightly structured text blobs.
// The four labeled sections inside each blob are not parsed further.
type ExamDocument struct {
	Questions string `json:"questions"`
	Answers   string `json:"answers"`
}

// Verdict is the structured result of checking a student's answer.
type Verdict struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// TopicSet is an unordered, deduplicated collection of topic labels.
type TopicSet map[string]struct{}

func NewTopicSet(topics ...string) TopicSet {
	s := make(TopicSet, len(topics))
	for _, t := range topics {
		s.Add(t)
	}
	return s
}

func (s TopicSet) Add(topic string) {
	s[topic] = struct{}{}
}

func (s TopicSet) Contains(topic string) bool {
	_, ok := s[topic]
	return ok
}

// Values returns the topics sorted for stable JSON output; set membership
// itself carries no order.
func (s TopicSet) Values() []string {
	values := make([]string, 0, len(s))
	for t := range s {
		values = append(values, t)
	}
	sort.Strings(values)
	return values
}
