package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []string{"crane", "crate", "slant", "trace", "carte", "grape"}

// craneVsGrape is the feedback of guessing "crane" when the answer is "grape".
func craneVsGrape() Constraints {
	return Constraints{
		Green:  LetterPositions{"r": {1}, "a": {2}, "e": {4}},
		Yellow: LetterPositions{},
		Grey:   LetterPositions{"c": {0}, "n": {3}},
	}
}

func TestFilterGreen(t *testing.T) {
	got := FilterGreen(sample, LetterPositions{"r": {1}, "e": {4}})
	assert.Equal(t, []string{"crane", "crate", "trace", "grape"}, got)
}

func TestFilterYellow(t *testing.T) {
	// 't' somewhere, but not at 0 or 4.
	got := FilterYellow(sample, LetterPositions{"t": {0, 4}})
	assert.Equal(t, []string{"crate", "carte"}, got)
}

func TestFilterGrey(t *testing.T) {
	got := FilterGrey(sample, LetterPositions{"c": {0}})
	assert.Equal(t, []string{"slant", "trace", "grape"}, got)
}

func TestAdjustGreyDropsPresentLetters(t *testing.T) {
	c := Constraints{
		Green:  LetterPositions{"e": {4}},
		Yellow: LetterPositions{"r": {0}},
		Grey:   LetterPositions{"e": {1}, "r": {3}, "s": {0}},
	}
	adj := AdjustGrey(c)
	assert.Equal(t, LetterPositions{"s": {0}}, adj)
	// The input map is left alone.
	assert.Len(t, c.Grey, 3)
}

func TestFilterConvergence(t *testing.T) {
	c := craneVsGrape()

	// Grey exclusions are positional: "trace" keeps its 'c' at 3, not 0.
	assert.Equal(t, []string{"trace", "grape"}, Filter(sample, c))
	assert.Equal(t, []string{"grape"}, FilterWith(sample, c, Options{Grey: GreyStrict}))

	// Guessing "trace" against "grape" adds grey t@0 c@3.
	next := c.Merge(Constraints{
		Green: LetterPositions{"r": {1}, "a": {2}, "e": {4}},
		Grey:  LetterPositions{"t": {0}, "c": {3}},
	})
	assert.Equal(t, []string{"grape"}, Filter(sample, next))
}

func TestFilterEmptyResultIsNotAnError(t *testing.T) {
	c := Constraints{Green: LetterPositions{"x": {0}}}
	got := Filter(sample, c)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterNoConstraintsKeepsEverything(t *testing.T) {
	assert.Equal(t, sample, Filter(sample, Constraints{}))
	assert.Equal(t, sample, Filter(sample, NewConstraints()))
}

func TestFilterGreyExemption(t *testing.T) {
	// 'a' is green at 2 and grey at 0 (a second 'a' in some guess).
	c := Constraints{
		Green: LetterPositions{"a": {2}},
		Grey:  LetterPositions{"a": {0}},
	}
	words := []string{"arara", "llama", "crane"}
	// Conservative mode ignores a's grey position entirely.
	assert.Equal(t, words, Filter(words, c))
	// Strict mode honours it.
	assert.Equal(t, []string{"llama", "crane"}, FilterWith(words, c, Options{Grey: GreyStrict}))
}

func TestFilterOutOfRangePositions(t *testing.T) {
	assert.Empty(t, Filter(sample, Constraints{Green: LetterPositions{"c": {9}}}))
	assert.Equal(t, []string{"crane", "crate", "trace", "carte"},
		Filter(sample, Constraints{Yellow: LetterPositions{"c": {-1, 7}}}))
	assert.Equal(t, sample, Filter(sample, Constraints{Grey: LetterPositions{"c": {5}}}))
}

func TestFilterProperties(t *testing.T) {
	vocab := []string{
		"crane", "crate", "slant", "trace", "carte", "grape", "audio", "adieu", "stare", "roast",
		"toast", "beast", "least", "feast", "cater", "react", "caret", "reach", "cheap", "peach",
	}
	cases := []Constraints{
		craneVsGrape(),
		{Green: LetterPositions{"a": {2}}, Yellow: LetterPositions{"t": {4}}},
		{Yellow: LetterPositions{"e": {0}, "a": {1}}, Grey: LetterPositions{"s": {0}, "o": {1}}},
		{Green: LetterPositions{"t": {4}}, Grey: LetterPositions{"t": {0}, "b": {0}}},
		{},
	}
	for _, c := range cases {
		for _, mode := range []GreyMode{GreyConservative, GreyStrict} {
			got := FilterWith(vocab, c, Options{Grey: mode})

			// Idempotence.
			assert.Equal(t, got, FilterWith(vocab, c, Options{Grey: mode}))

			// Subset, order preserved.
			i := 0
			for _, w := range got {
				for i < len(vocab) && vocab[i] != w {
					i++
				}
				require.Less(t, i, len(vocab), "%q not in vocabulary order", w)
				i++
			}

			// Soundness against the single passes.
			for _, w := range got {
				one := []string{w}
				assert.Len(t, FilterGreen(one, c.Green), 1, w)
				assert.Len(t, FilterYellow(one, c.Yellow), 1, w)
				assert.Len(t, FilterGrey(one, AdjustGrey(c)), 1, w)
			}

			// Adding a green constraint never grows the result.
			tighter := c.Merge(Constraints{Green: LetterPositions{"e": {4}}})
			assert.LessOrEqual(t, len(FilterWith(vocab, tighter, Options{Grey: mode})), len(got))
		}
		// Strict never keeps more than conservative.
		assert.LessOrEqual(t,
			len(FilterWith(vocab, c, Options{Grey: GreyStrict})),
			len(Filter(vocab, c)))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := append([]string(nil), sample...)
	_ = Filter(in, craneVsGrape())
	assert.Equal(t, strings.Join(sample, ","), strings.Join(in, ","))
}

func TestParseGreyMode(t *testing.T) {
	assert.Equal(t, GreyStrict, ParseGreyMode(" Strict "))
	assert.Equal(t, GreyConservative, ParseGreyMode(""))
	assert.Equal(t, GreyConservative, ParseGreyMode("positional"))
	assert.Equal(t, "strict", GreyStrict.String())
}

func TestLetterPositionsAdd(t *testing.T) {
	lp := LetterPositions{}
	lp.Add("a", 3)
	lp.Add("a", 1)
	lp.Add("a", 3)
	assert.Equal(t, []int{1, 3}, lp["a"])
	assert.True(t, lp.Has("a"))
	assert.False(t, lp.Has("b"))
}
