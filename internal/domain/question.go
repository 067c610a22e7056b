package domain

import (
	"encoding/json"
	"strings"
)

// NoCorrectChoice is the CorrectIndex of a question whose correct answer is
// unknown. No selection ever matches it.
const NoCorrectChoice = -1

// QuizMode selects which question set of a deck a quiz runs over.
type QuizMode string

// Supported quiz modes.
const (
	QuizModeDefinition QuizMode = "definition"
	QuizModeUsage      QuizMode = "usage"
)

// ParseQuizMode accepts the canonical mode names and the short forms
// "def" and "use".
func ParseQuizMode(s string) (QuizMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "definition", "def":
		return QuizModeDefinition, nil
	case "usage", "use":
		return QuizModeUsage, nil
	default:
		return "", NewValidationError("mode", "must be one of definition, usage", ErrInvalidQuizMode)
	}
}

// Title is the heading shown above a quiz in this mode.
func (m QuizMode) Title() string {
	if m == QuizModeUsage {
		return "Usage Quiz"
	}
	return "Definition Quiz"
}

// Question is a multiple-choice question. Definition questions carry their
// text in Question, usage questions in Prompt.
type Question struct {
	Question     string   `json:"question,omitempty"`
	Prompt       string   `json:"prompt,omitempty"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Text returns the question text for the given mode.
func (q Question) Text(mode QuizMode) string {
	if mode == QuizModeUsage {
		return q.Prompt
	}
	return q.Question
}

// HasValidAnswer reports whether CorrectIndex points at one of the choices.
func (q Question) HasValidAnswer() bool {
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Choices)
}

// CorrectChoice returns the text of the correct choice, if there is one.
func (q Question) CorrectChoice() (string, bool) {
	if !q.HasValidAnswer() {
		return "", false
	}
	return q.Choices[q.CorrectIndex], true
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	out.Choices = append([]string(nil), q.Choices...)
	return out
}

// UnmarshalJSON decodes a question leniently: a missing or non-integer
// correctIndex becomes NoCorrectChoice, non-string choices keep their raw
// JSON text so indexes stay aligned, and a non-object entry decodes to an
// empty question.
func (q *Question) UnmarshalJSON(data []byte) error {
	obj, ok := decodeObject(data)
	if !ok {
		*q = Question{Choices: []string{}, CorrectIndex: NoCorrectChoice}
		return nil
	}

	*q = Question{
		Question:     stringField(obj, "question"),
		Prompt:       stringField(obj, "prompt"),
		Choices:      choicesField(obj, "choices"),
		CorrectIndex: intField(obj, "correctIndex", NoCorrectChoice),
		Explanation:  stringField(obj, "explanation"),
	}
	return nil
}

func choicesField(obj map[string]json.RawMessage, key string) []string {
	items, ok := arrayField(obj, key)
	if !ok {
		return []string{}
	}

	choices := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			choices = append(choices, s)
			continue
		}
		choices = append(choices, strings.TrimSpace(string(item)))
	}
	return choices
}
