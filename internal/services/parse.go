package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"studymate-backend/internal/models"
)

// examAnswersDelimiter separates the question and answer blobs of a generated
// exam. Its absence means the model never produced an answer key.
const examAnswersDelimiter = "---ANSWERS---"

// examAnswersMissing is returned in place of the answers blob when the
// delimiter is absent.
const examAnswersMissing = "Answers not available"

// qaScanState tags the two states of the Q&A line scanner.
type qaScanState int

const (
	awaitingQuestion qaScanState = iota
	accumulatingAnswer
)

// ParseQAPairs converts "Q..: ... / A..: ..." formatted completion text into
// ordered pairs. Sequence numbers are assigned 1..N in scan order, ignoring
// whatever digits appear in the model's own labels.
//
// A question marker followed by another question marker before any answer
// drops the earlier question. Lines that are neither marker are dropped, so
// multi-line answers collapse to their last "A" line.
func ParseQAPairs(completion string) []models.QAPair {
	var (
		pairs    []models.QAPair
		state    = awaitingQuestion
		question string
		answer   string
		num      = 1
	)

	// flush emits the pending pair when both halves are non-empty. Called on
	// every new question marker and once at end of scan, so an unanswered
	// question is dropped by the next marker rather than half-emitted.
	flush := func() {
		if state == accumulatingAnswer && question != "" && answer != "" {
			pairs = append(pairs, models.QAPair{QuestionNum: num, Question: question, Answer: answer})
			num++
		}
	}

	for _, line := range strings.Split(completion, "\n") {
		switch {
		case strings.HasPrefix(line, "Q"):
			flush()
			question = afterFirstColon(line)
			answer = ""
			state = accumulatingAnswer
		case strings.HasPrefix(line, "A"):
			if state == accumulatingAnswer {
				answer = afterFirstColon(line)
			}
		}
	}
	flush()

	return pairs
}

// ParseExam splits a completion on the answers delimiter. Neither blob's
// internal sections are parsed.
func ParseExam(completion string) models.ExamDocument {
	parts := strings.Split(completion, examAnswersDelimiter)

	doc := models.ExamDocument{
		Questions: strings.TrimSpace(parts[0]),
		Answers:   examAnswersMissing,
	}
	if len(parts) > 1 {
		doc.Answers = strings.TrimSpace(parts[1])
	}
	return doc
}

// ParseTopics extracts topic strings from "Topic N: ..." formatted lines.
// Any line containing ": " contributes everything after the first occurrence;
// other lines are ignored. The prompt asks for exactly two topics but the
// model is not trusted to comply, so any count comes back.
func ParseTopics(completion string) []string {
	var topics []string
	for _, line := range strings.Split(completion, "\n") {
		idx := strings.Index(line, ": ")
		if idx < 0 {
			continue
		}
		topics = append(topics, strings.TrimSpace(line[idx+2:]))
	}
	return topics
}

// ParseVerdict decodes the JSON verdict object from a completion. Markdown
// code fences are stripped first since models wrap JSON in them despite
// instructions. Invalid JSON or a missing required key is an error; there is
// no structural fallback to default a verdict from.
func ParseVerdict(completion string) (models.Verdict, error) {
	raw := stripCodeFences(completion)

	var payload struct {
		IsCorrect *bool   `json:"is_correct"`
		Feedback  *string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return models.Verdict{}, fmt.Errorf("invalid verdict JSON: %w", err)
	}
	if payload.IsCorrect == nil {
		return models.Verdict{}, fmt.Errorf("verdict JSON missing is_correct")
	}
	if payload.Feedback == nil {
		return models.Verdict{}, fmt.Errorf("verdict JSON missing feedback")
	}

	return models.Verdict{IsCorrect: *payload.IsCorrect, Feedback: *payload.Feedback}, nil
}

// afterFirstColon returns the trimmed text after the first ":" in line, or
// the whole trimmed line when there is no colon.
func afterFirstColon(line string) string {
	idx := strings.Index(line, ":")
	return strings.TrimSpace(line[idx+1:])
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
