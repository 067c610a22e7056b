package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeckDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantIDs   []string
		wantErrIs error
	}{
		{
			name:    "single deck object",
			input:   `{"id":"a","title":"Alpha"}`,
			wantIDs: []string{"a"},
		},
		{
			name:    "array of decks",
			input:   `[{"id":"a","title":"Alpha"},{"id":"b","title":"Beta"}]`,
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "empty id is still a string",
			input:   `{"id":"","title":"Untitled"}`,
			wantIDs: []string{""},
		},
		{
			name:      "missing id",
			input:     `{"title":"Alpha"}`,
			wantErrIs: ErrDeckIDMissing,
		},
		{
			name:      "numeric id",
			input:     `{"id":7,"title":"Alpha"}`,
			wantErrIs: ErrDeckIDMissing,
		},
		{
			name:      "missing title",
			input:     `{"id":"a"}`,
			wantErrIs: ErrDeckTitleMissing,
		},
		{
			name:      "one bad deck rejects the batch",
			input:     `[{"id":"a","title":"Alpha"},{"id":"b"}]`,
			wantErrIs: ErrDeckTitleMissing,
		},
		{
			name:      "null document",
			input:     `null`,
			wantErrIs: ErrDeckNotObject,
		},
		{
			name:      "array with null entry",
			input:     `[null]`,
			wantErrIs: ErrDeckNotObject,
		},
		{
			name:      "broken JSON",
			input:     `{"id":"a",`,
			wantErrIs: ErrInvalidFormat,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			decks, err := ParseDeckDocument([]byte(tc.input))
			if tc.wantErrIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErrIs), "expected %v, got %v", tc.wantErrIs, err)
				assert.Nil(t, decks)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(decks))
			for _, d := range decks {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestParseDeckDocument_CoercesSequences(t *testing.T) {
	t.Parallel()

	decks, err := ParseDeckDocument([]byte(`{
		"id": "d1",
		"title": "Deck",
		"cards": "not a list",
		"definitionMCQs": {"oops": true}
	}`))
	require.NoError(t, err)
	require.Len(t, decks, 1)

	d := decks[0]
	assert.NotNil(t, d.Cards)
	assert.Empty(t, d.Cards)
	assert.NotNil(t, d.DefinitionMCQs)
	assert.Empty(t, d.DefinitionMCQs)
	assert.NotNil(t, d.UsageMCQs)
	assert.Empty(t, d.UsageMCQs)
}

func TestParseDeckDocument_DecodesContent(t *testing.T) {
	t.Parallel()

	decks, err := ParseDeckDocument([]byte(`{
		"id": "d1",
		"title": "Deck",
		"cards": [{"word": "ubiquitous", "meaning": "found everywhere"}, 42],
		"definitionMCQs": [
			{"question": "Meaning of terse?", "choices": ["brief", "long"], "correctIndex": 0, "explanation": "short"}
		],
		"usageMCQs": [
			{"prompt": "Pick the sentence", "choices": ["a", 3], "correctIndex": "1"},
			{"prompt": "Another", "choices": ["x", "y"], "correctIndex": 1.5}
		]
	}`))
	require.NoError(t, err)
	d := decks[0]

	require.Len(t, d.Cards, 2)
	assert.Equal(t, Card{Word: "ubiquitous", Meaning: "found everywhere"}, d.Cards[0])
	assert.Equal(t, Card{}, d.Cards[1])

	require.Len(t, d.DefinitionMCQs, 1)
	q := d.DefinitionMCQs[0]
	assert.Equal(t, "Meaning of terse?", q.Text(QuizModeDefinition))
	assert.Equal(t, 0, q.CorrectIndex)
	assert.Equal(t, "short", q.Explanation)

	require.Len(t, d.UsageMCQs, 2)
	assert.Equal(t, "Pick the sentence", d.UsageMCQs[0].Text(QuizModeUsage))
	assert.Equal(t, []string{"a", "3"}, d.UsageMCQs[0].Choices)
	assert.Equal(t, NoCorrectChoice, d.UsageMCQs[0].CorrectIndex)
	assert.Equal(t, NoCorrectChoice, d.UsageMCQs[1].CorrectIndex)
}

func TestParseDeckFeed(t *testing.T) {
	t.Parallel()

	decks, err := ParseDeckFeed([]byte(`[{"id":"b1","title":"Built-in"}]`))
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "b1", decks[0].ID)

	_, err = ParseDeckFeed([]byte(`{"id":"b1","title":"Built-in"}`))
	assert.ErrorIs(t, err, ErrFeedNotArray)

	_, err = ParseDeckFeed([]byte(`<html>oops</html>`))
	assert.ErrorIs(t, err, ErrFeedNotArray)

	empty, err := ParseDeckFeed([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeckJSONRoundTripKeepsMalformedAnswer(t *testing.T) {
	t.Parallel()

	in := Deck{
		ID:    "d",
		Title: "T",
		DefinitionMCQs: []Question{
			{Question: "q", Choices: []string{"a", "b"}, CorrectIndex: NoCorrectChoice},
		},
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Deck
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, NoCorrectChoice, out.DefinitionMCQs[0].CorrectIndex)
	assert.Empty(t, out.Cards)
}

func TestParseQuizMode(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"definition", "def", " DEF "} {
		mode, err := ParseQuizMode(s)
		require.NoError(t, err)
		assert.Equal(t, QuizModeDefinition, mode)
	}
	for _, s := range []string{"usage", "use"} {
		mode, err := ParseQuizMode(s)
		require.NoError(t, err)
		assert.Equal(t, QuizModeUsage, mode)
	}

	_, err := ParseQuizMode("spelling")
	assert.ErrorIs(t, err, ErrInvalidQuizMode)

	assert.Equal(t, "Definition Quiz", QuizModeDefinition.Title())
	assert.Equal(t, "Usage Quiz", QuizModeUsage.Title())
}

func TestDeckQuestions(t *testing.T) {
	t.Parallel()

	d := Deck{
		DefinitionMCQs: []Question{{Question: "def"}},
		UsageMCQs:      []Question{{Prompt: "use"}},
	}
	assert.Equal(t, "def", d.Questions(QuizModeDefinition)[0].Question)
	assert.Equal(t, "use", d.Questions(QuizModeUsage)[0].Prompt)
	assert.Nil(t, d.Questions(QuizMode("other")))
}

func TestQuestionCorrectChoice(t *testing.T) {
	t.Parallel()

	q := Question{Choices: []string{"a", "b"}, CorrectIndex: 1}
	text, ok := q.CorrectChoice()
	assert.True(t, ok)
	assert.Equal(t, "b", text)

	q.CorrectIndex = 2
	_, ok = q.CorrectChoice()
	assert.False(t, ok)

	clone := q.Clone()
	clone.Choices[0] = "changed"
	assert.Equal(t, "a", q.Choices[0])
}
