package shuffle

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always picks the same index, clamped to the allowed range.
type fixedSource struct{ pick int }

func (f fixedSource) IntN(n int) int {
	if f.pick >= n {
		return n - 1
	}
	return f.pick
}

func TestInPlacePreservesElements(t *testing.T) {
	t.Parallel()
	src := rand.New(rand.NewPCG(1, 2))

	for n := 0; n < 20; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := InPlace(src, slices.Clone(in))
		sorted := slices.Clone(out)
		slices.Sort(sorted)
		assert.Equal(t, in, sorted, "length %d lost or duplicated elements", n)
	}
}

func TestInPlaceReturnsSameSlice(t *testing.T) {
	t.Parallel()
	s := []string{"a", "b", "c"}
	out := InPlace(fixedSource{pick: 0}, s)
	require.Len(t, out, 3)
	assert.Same(t, &s[0], &out[0])
	// i=2 swaps with 0, i=1 swaps with 0
	assert.Equal(t, []string{"b", "c", "a"}, s)
}

func TestInPlaceIdentity(t *testing.T) {
	t.Parallel()
	s := []int{1, 2, 3, 4, 5}
	InPlace(Identity(), s)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s)
}

func TestInPlaceNilSourceUsesDefault(t *testing.T) {
	t.Parallel()
	s := []int{1, 2, 3}
	InPlace[int](nil, s)
	sorted := slices.Clone(s)
	slices.Sort(sorted)
	assert.Equal(t, []int{1, 2, 3}, sorted)
}

func TestInPlaceUniformPositions(t *testing.T) {
	t.Parallel()
	const (
		n      = 4
		trials = 40000
	)
	src := rand.New(rand.NewPCG(42, 7))
	var counts [n][n]int

	for trial := 0; trial < trials; trial++ {
		s := []int{0, 1, 2, 3}
		InPlace(src, s)
		for pos, v := range s {
			counts[pos][v]++
		}
	}

	expected := float64(trials) / n
	for pos := 0; pos < n; pos++ {
		for v := 0; v < n; v++ {
			got := float64(counts[pos][v])
			assert.InDelta(t, expected, got, expected*0.05,
				"element %d at position %d: %v", v, pos, got)
		}
	}
}

func TestInPlaceAllPermutationsReachable(t *testing.T) {
	t.Parallel()
	src := rand.New(rand.NewPCG(3, 9))
	seen := map[[3]int]int{}
	for trial := 0; trial < 6000; trial++ {
		s := []int{0, 1, 2}
		InPlace(src, s)
		seen[[3]int{s[0], s[1], s[2]}]++
	}
	assert.Len(t, seen, 6)
	for perm, c := range seen {
		assert.InDelta(t, 1000, c, 150, "permutation %v", perm)
	}
}

func TestQuestionTracksCorrectChoice(t *testing.T) {
	t.Parallel()
	src := rand.New(rand.NewPCG(11, 13))
	q := domain.Question{
		Question:     "Meaning of terse?",
		Choices:      []string{"brief", "verbose", "angry", "late"},
		CorrectIndex: 0,
		Explanation:  "Terse means brief.",
	}
	original := q.Clone()

	for i := 0; i < 200; i++ {
		out := Question(src, q)

		assert.ElementsMatch(t, q.Choices, out.Choices)
		require.True(t, out.HasValidAnswer())
		assert.Equal(t, "brief", out.Choices[out.CorrectIndex])
		assert.Equal(t, q.Question, out.Question)
		assert.Equal(t, q.Explanation, out.Explanation)
	}
	assert.Equal(t, original, q, "input question was mutated")
}

func TestQuestionWithoutCorrectChoice(t *testing.T) {
	t.Parallel()
	for _, idx := range []int{domain.NoCorrectChoice, 4, 99} {
		q := domain.Question{Choices: []string{"a", "b", "c"}, CorrectIndex: idx}
		out := Question(rand.New(rand.NewPCG(1, 1)), q)
		assert.Equal(t, domain.NoCorrectChoice, out.CorrectIndex)
		assert.ElementsMatch(t, q.Choices, out.Choices)
	}
}

func TestQuestionIdentity(t *testing.T) {
	t.Parallel()
	q := domain.Question{Choices: []string{"a", "b", "c"}, CorrectIndex: 2}
	out := Question(Identity(), q)
	assert.Equal(t, q, out)
}

func TestQuestionDuplicateChoiceText(t *testing.T) {
	t.Parallel()
	q := domain.Question{Choices: []string{"same", "same", "other"}, CorrectIndex: 0}
	out := Question(fixedSource{pick: 0}, q)
	assert.Equal(t, []string{"same", "other", "same"}, out.Choices)
	// the tagged entry is tracked, not the first entry with matching text
	assert.Equal(t, 2, out.CorrectIndex)
}
