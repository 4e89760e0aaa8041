// internal/solver/filter.go
//
// Constraint filter engine.
//
// Filter narrows a word list in three sequential passes, each working on the
// output of the previous one and preserving input order:
//
//	green  → every green letter sits at each of its positions
//	yellow → every yellow letter occurs somewhere, but never at a yellow position
//	grey   → grey letters are excluded at their grey positions
//
// Before the grey pass every letter that is also green or yellow is dropped
// from the grey map (see AdjustGrey). GreyStrict tightens the grey pass; the
// default GreyConservative matches the browser extension's behaviour.
//
// A position outside the word means "the letter is not there": a green
// requirement at such a position never matches, yellow and grey exclusions at
// such a position never fire.

package solver

import "strings"

// GreyMode selects how the grey pass treats its letters.
type GreyMode int

const (
	// GreyConservative excludes grey letters only at their recorded positions,
	// and ignores grey letters that are also green or yellow.
	GreyConservative GreyMode = iota
	// GreyStrict excludes grey-only letters from the whole word and keeps the
	// positional exclusion for letters that are also green or yellow.
	GreyStrict
)

// String implements fmt.Stringer.
func (m GreyMode) String() string {
	if m == GreyStrict {
		return "strict"
	}
	return "conservative"
}

// ParseGreyMode maps "strict" to GreyStrict; anything else is conservative.
func ParseGreyMode(s string) GreyMode {
	if strings.EqualFold(strings.TrimSpace(s), "strict") {
		return GreyStrict
	}
	return GreyConservative
}

// Options tune FilterWith.
type Options struct {
	Grey GreyMode
}

// Filter returns the words consistent with c, in input order.
// It never mutates words and returns a fresh slice.
func Filter(words []string, c Constraints) []string {
	return FilterWith(words, c, Options{})
}

// FilterWith is Filter with an explicit grey mode.
func FilterWith(words []string, c Constraints, opts Options) []string {
	out := FilterGreen(words, c.Green)
	out = FilterYellow(out, c.Yellow)
	if opts.Grey == GreyStrict {
		return filterGreyStrict(out, c)
	}
	return FilterGrey(out, AdjustGrey(c))
}

// FilterGreen keeps words that carry every green letter at all of its positions.
func FilterGreen(words []string, green LetterPositions) []string {
	return keep(words, func(w string) bool {
		for letter, ps := range green {
			for _, p := range ps {
				if !letterAt(w, p, letter) {
					return false
				}
			}
		}
		return true
	})
}

// FilterYellow keeps words that contain every yellow letter, but not at any
// position where it was flagged yellow.
func FilterYellow(words []string, yellow LetterPositions) []string {
	return keep(words, func(w string) bool {
		for letter, ps := range yellow {
			if !strings.Contains(w, letter) {
				return false
			}
			for _, p := range ps {
				if letterAt(w, p, letter) {
					return false
				}
			}
		}
		return true
	})
}

// FilterGrey drops words that carry a grey letter at one of its grey positions.
// Callers normally pass the map returned by AdjustGrey.
func FilterGrey(words []string, grey LetterPositions) []string {
	return keep(words, func(w string) bool {
		for letter, ps := range grey {
			for _, p := range ps {
				if letterAt(w, p, letter) {
					return false
				}
			}
		}
		return true
	})
}

// AdjustGrey returns a copy of c.Grey without the letters that also appear
// in c.Green or c.Yellow.
func AdjustGrey(c Constraints) LetterPositions {
	out := make(LetterPositions, len(c.Grey))
	for letter, ps := range c.Grey {
		if c.Green.Has(letter) || c.Yellow.Has(letter) {
			continue
		}
		out[letter] = append([]int(nil), ps...)
	}
	return out
}

func filterGreyStrict(words []string, c Constraints) []string {
	return keep(words, func(w string) bool {
		for letter, ps := range c.Grey {
			if !c.Green.Has(letter) && !c.Yellow.Has(letter) {
				if strings.Contains(w, letter) {
					return false
				}
				continue
			}
			for _, p := range ps {
				if letterAt(w, p, letter) {
					return false
				}
			}
		}
		return true
	})
}

// keep returns the words satisfying ok, preserving order.
func keep(words []string, ok func(string) bool) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if ok(w) {
			out = append(out, w)
		}
	}
	return out
}

// letterAt reports whether w holds letter at position p.
func letterAt(w string, p int, letter string) bool {
	if p < 0 || p >= len(w) {
		return false
	}
	return w[p:p+1] == letter
}
