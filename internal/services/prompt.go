package services

import "fmt"

// Character budgets applied to source text before it is embedded in a prompt.
// These bound the model's context window; the cut may land mid-sentence.
const (
	sourceCharBudget = 6000
	topicCharBudget  = 3000
)

// System roles sent alongside each prompt kind.
const (
	roleStudyMaterials = "You are an expert educator who creates high-quality study materials."
	roleExamAuthor     = "You are an expert educator who creates comprehensive exam papers."
	roleTopicScout     = "You are an expert educator who can identify key learning topics."
	roleTextAnswerer   = "You are an expert educator who provides accurate and concise answers based solely on the given text."
	roleAnswerGrader   = "You are an expert teacher who provides accurate and constructive feedback."
)

// PromptRequest is a fully rendered generation request: the exact strings and
// sampling parameters to hand to the model provider.
type PromptRequest struct {
	SystemRole  string
	Prompt      string
	Temperature float32
	MaxTokens   int32
}

// BuildQAPrompt renders the question/answer generation request. The output
// format it dictates is exactly the grammar ParseQAPairs accepts.
func BuildQAPrompt(text, topic string) PromptRequest {
	prompt := fmt.Sprintf(`Based on the following text about %s, generate 5 subjective essay-type questions and their detailed answers. Make the questions challenging and thought-provoking.

Text: %s

Generate the output in this format:
Q1: [Question]
A1: [Answer]
Q2: [Question]
A2: [Answer]
... and so on`, topic, truncateRunes(text, sourceCharBudget))

	return PromptRequest{
		SystemRole:  roleStudyMaterials,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   4000,
	}
}

// BuildExamPrompt renders the sample-exam request. The section labels and the
// ---ANSWERS--- delimiter match what ParseExam splits on.
func BuildExamPrompt(text string) PromptRequest {
	prompt := fmt.Sprintf(`Based on the following text, generate a sample exam paper with the following types of questions:
1. 5 Fill in the blanks
2. 5 True or False statements
3. 5 Short Questions (to be answered in one sentence)
4. 3 Long Questions (Essay type questions)

Please format the output as follows:
FILL IN THE BLANKS:
1. [question]
...

TRUE OR FALSE:
1. [statement]
...

SHORT QUESTIONS:
1. [question]
...

LONG QUESTIONS:
1. [question]
...

---ANSWERS---
FILL IN THE BLANKS:
1. [answer]
...

TRUE OR FALSE:
1. [True/False]
...

SHORT QUESTIONS:
1. [answer]
...

LONG QUESTIONS:
1. [detailed answer]
...

Text: %s`, truncateRunes(text, sourceCharBudget))

	return PromptRequest{
		SystemRole:  roleExamAuthor,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   4000,
	}
}

// BuildTopicsPrompt renders the topic-extraction request. ParseTopics reads
// the "Topic N: ..." lines this format asks for.
func BuildTopicsPrompt(text string) PromptRequest {
	prompt := fmt.Sprintf(`Based on the following text, generate exactly two main topics that would be most beneficial for students to watch educational videos about. Format your response as:
Topic 1: [topic]
Topic 2: [topic]

Text: %s`, truncateRunes(text, topicCharBudget))

	return PromptRequest{
		SystemRole:  roleTopicScout,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   200,
	}
}

// BuildAnswerPrompt renders the answer-from-text request.
func BuildAnswerPrompt(text, question string) PromptRequest {
	prompt := fmt.Sprintf(`Based on the following text, answer the question. Only use information from the provided text. If the answer cannot be found in the text, say so.

Text: %s

Question: %s

Answer:`, truncateRunes(text, sourceCharBudget), question)

	return PromptRequest{
		SystemRole:  roleTextAnswerer,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

// BuildCheckAnswerPrompt renders the answer-evaluation request. Lower
// temperature keeps the verdict consistent; ParseVerdict expects the JSON
// skeleton shown here.
func BuildCheckAnswerPrompt(question, expectedAnswer, userAnswer string) PromptRequest {
	prompt := fmt.Sprintf(`You are a knowledgeable teacher evaluating a student's answer.

Question: %s
Expected Answer: %s
Student's Answer: %s

Evaluate if the student's answer is correct and provide constructive feedback.
Return your response in this format:
{
    "is_correct": true/false,
    "feedback": "Your feedback here"
}

Make sure your response is valid JSON.`, question, expectedAnswer, userAnswer)

	return PromptRequest{
		SystemRole:  roleAnswerGrader,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   500,
	}
}

// truncateRunes cuts s to at most limit characters. No word-boundary
// adjustment is made.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
