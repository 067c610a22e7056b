// Package shuffle implements the random permutations used by study sessions:
// an in-place Fisher-Yates shuffle and a question transform that permutes the
// choices while keeping track of the correct one.
package shuffle

import (
	"math/rand/v2"

	"github.com/phrazzld/vocab-study/internal/domain"
)

// Source provides uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Default returns a Source backed by the automatically seeded global
// generator of math/rand/v2.
func Default() Source {
	return globalSource{}
}

type identitySource struct{}

func (identitySource) IntN(n int) int {
	return n - 1
}

// Identity returns a Source under which InPlace leaves every sequence in its
// original order. Tests use it to make sessions deterministic.
func Identity() Source {
	return identitySource{}
}

// InPlace permutes s uniformly at random and returns it. It walks from the
// last index down to 1, swapping each element with one chosen uniformly at or
// before it. Callers that need the original order must copy first.
func InPlace[T any](src Source, s []T) []T {
	if src == nil {
		src = Default()
	}
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
	return s
}

type taggedChoice struct {
	text    string
	correct bool
}

// Question returns a copy of q whose choices are permuted and whose
// CorrectIndex follows the originally correct choice. q is never modified.
// When q has no valid correct choice the result's CorrectIndex is
// domain.NoCorrectChoice.
func Question(src Source, q domain.Question) domain.Question {
	tagged := make([]taggedChoice, len(q.Choices))
	for i, text := range q.Choices {
		tagged[i] = taggedChoice{text: text, correct: i == q.CorrectIndex}
	}

	InPlace(src, tagged)

	out := q
	out.Choices = make([]string, len(tagged))
	out.CorrectIndex = domain.NoCorrectChoice
	for i, c := range tagged {
		out.Choices[i] = c.text
		if c.correct {
			out.CorrectIndex = i
		}
	}
	return out
}
