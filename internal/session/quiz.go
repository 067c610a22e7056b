package session

import (
	"errors"
	"fmt"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/shuffle"
)

// EmptyQuizMessage is shown for a deck without questions in the chosen mode.
const EmptyQuizMessage = "No questions in this deck yet."

// ErrChoiceOutOfRange is returned when an answer names a choice the current
// question does not have.
var ErrChoiceOutOfRange = errors.New("choice out of range")

// Mark is how a choice is highlighted after the question is answered.
type Mark string

const (
	MarkNone    Mark = "none"
	MarkCorrect Mark = "correct"
	MarkWrong   Mark = "wrong"
)

// Outcome records the answer to the current question.
type Outcome struct {
	Selected     int
	CorrectIndex int
	Correct      bool
	Explanation  string
}

// Quiz is a multiple-choice pass over one question set of a deck.
//
// Choices are always shuffled per question. Question order is shuffled only
// when the quiz was started with shuffling on. Answering locks the question
// until the learner moves on; moving on from the last question starts a new
// pass with fresh shuffles and a zero score.
type Quiz struct {
	deck     domain.Deck
	mode     domain.QuizMode
	shuffled bool
	src      shuffle.Source

	order   []domain.Question
	index   int
	score   int
	locked  bool
	outcome Outcome
	pass    int
}

// NewQuiz starts the first pass of a quiz over deck in mode.
func NewQuiz(deck domain.Deck, mode domain.QuizMode, shuffled bool, src shuffle.Source) (*Quiz, error) {
	if mode != domain.QuizModeDefinition && mode != domain.QuizModeUsage {
		return nil, domain.NewValidationError("mode", fmt.Sprintf("unknown quiz mode %q", mode), domain.ErrInvalidQuizMode)
	}
	if src == nil {
		src = shuffle.Default()
	}
	q := &Quiz{deck: deck, mode: mode, shuffled: shuffled, src: src}
	q.restart()
	return q, nil
}

func (q *Quiz) restart() {
	questions := q.deck.Questions(q.mode)
	order := make([]domain.Question, len(questions))
	for i, question := range questions {
		order[i] = shuffle.Question(q.src, question)
	}
	if q.shuffled {
		shuffle.InPlace(q.src, order)
	}

	q.order = order
	q.index = 0
	q.score = 0
	q.locked = false
	q.outcome = Outcome{}
	q.pass++
}

// Answer scores selected against the current question and locks it. A second
// answer to a locked question, or any answer to an empty quiz, changes nothing
// and reports the existing outcome.
func (q *Quiz) Answer(selected int) (Outcome, error) {
	current, ok := q.Current()
	if !ok || q.locked {
		return q.outcome, nil
	}
	if selected < 0 || selected >= len(current.Choices) {
		return Outcome{}, fmt.Errorf("%w: %d of %d", ErrChoiceOutOfRange, selected, len(current.Choices))
	}

	q.locked = true
	q.outcome = Outcome{
		Selected:     selected,
		CorrectIndex: current.CorrectIndex,
		Correct:      selected == current.CorrectIndex,
		Explanation:  current.Explanation,
	}
	if q.outcome.Correct {
		q.score++
	}
	return q.outcome, nil
}

// AdvanceOrRestart moves to the next question, or starts a new pass when the
// current question is the last. It reports whether a new pass started.
func (q *Quiz) AdvanceOrRestart() bool {
	if len(q.order) == 0 {
		return false
	}
	if q.index < len(q.order)-1 {
		q.index++
		q.locked = false
		q.outcome = Outcome{}
		return false
	}
	q.restart()
	return true
}

// Current returns the question being asked.
func (q *Quiz) Current() (domain.Question, bool) {
	if len(q.order) == 0 {
		return domain.Question{}, false
	}
	return q.order[q.index], true
}

// Outcome returns the answer to the current question once it is locked.
func (q *Quiz) Outcome() (Outcome, bool) {
	return q.outcome, q.locked
}

// Marks returns one Mark per choice of the current question. Before an
// answer every choice is MarkNone; afterwards the correct choice is
// MarkCorrect and a different selected choice is MarkWrong.
func (q *Quiz) Marks() []Mark {
	current, ok := q.Current()
	if !ok {
		return nil
	}
	marks := make([]Mark, len(current.Choices))
	for i := range marks {
		marks[i] = MarkNone
		if !q.locked {
			continue
		}
		switch {
		case i == q.outcome.CorrectIndex:
			marks[i] = MarkCorrect
		case i == q.outcome.Selected:
			marks[i] = MarkWrong
		}
	}
	return marks
}

// Mode is the question set the quiz runs over.
func (q *Quiz) Mode() domain.QuizMode { return q.mode }

// DeckID identifies the deck the quiz runs over.
func (q *Quiz) DeckID() string { return q.deck.ID }

// Len is the number of questions in a pass.
func (q *Quiz) Len() int { return len(q.order) }

// Index is the 0-based position of the current question.
func (q *Quiz) Index() int { return q.index }

// Score counts correct answers in the current pass.
func (q *Quiz) Score() int { return q.score }

// Locked reports whether the current question has been answered.
func (q *Quiz) Locked() bool { return q.locked }

// Pass counts the passes started, beginning at 1.
func (q *Quiz) Pass() int { return q.pass }

// ChoiceView is one rendered choice.
type ChoiceView struct {
	Text string `json:"text"`
	Mark Mark   `json:"mark"`
}

// QuizSnapshot is the render state of a quiz session.
type QuizSnapshot struct {
	DeckID       string       `json:"deckId"`
	DeckTitle    string       `json:"deckTitle"`
	Mode         string       `json:"mode"`
	Title        string       `json:"title"`
	Number       int          `json:"number"`
	Total        int          `json:"total"`
	Score        int          `json:"score"`
	Pass         int          `json:"pass"`
	Locked       bool         `json:"locked"`
	Question     string       `json:"question,omitempty"`
	Choices      []ChoiceView `json:"choices,omitempty"`
	Correct      *bool        `json:"correct,omitempty"`
	Explanation  string       `json:"explanation,omitempty"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
}

// Snapshot captures the session for rendering. The explanation is only
// included once the question is answered.
func (q *Quiz) Snapshot() QuizSnapshot {
	s := QuizSnapshot{
		DeckID:    q.deck.ID,
		DeckTitle: q.deck.Title,
		Mode:      string(q.mode),
		Title:     q.mode.Title(),
		Total:     len(q.order),
		Score:     q.score,
		Pass:      q.pass,
		Locked:    q.locked,
	}
	current, ok := q.Current()
	if !ok {
		s.EmptyMessage = EmptyQuizMessage
		return s
	}

	s.Number = q.index + 1
	s.Question = current.Text(q.mode)
	marks := q.Marks()
	s.Choices = make([]ChoiceView, len(current.Choices))
	for i, text := range current.Choices {
		s.Choices[i] = ChoiceView{Text: text, Mark: marks[i]}
	}
	if q.locked {
		correct := q.outcome.Correct
		s.Correct = &correct
		s.Explanation = q.outcome.Explanation
	}
	return s
}
