// internal/solver/constraints.go
//
// Constraint maps consumed by the filter engine.
//
// A LetterPositions maps a single lowercase letter to the cell positions where
// one kind of feedback was seen for that letter, accumulated over every guess
// made on a board so far. Constraints groups the three kinds together.

package solver

import "sort"

// LetterPositions maps a letter ("a".."z") to the positions it was seen at.
type LetterPositions map[string][]int

// Constraints is the accumulated feedback of one board.
type Constraints struct {
	Green  LetterPositions `json:"green"`
	Yellow LetterPositions `json:"yellow"`
	Grey   LetterPositions `json:"grey"`
}

// NewConstraints returns Constraints with all three maps allocated.
func NewConstraints() Constraints {
	return Constraints{
		Green:  LetterPositions{},
		Yellow: LetterPositions{},
		Grey:   LetterPositions{},
	}
}

// Add records pos for letter, ignoring duplicates and keeping positions sorted.
func (lp LetterPositions) Add(letter string, pos int) {
	for _, p := range lp[letter] {
		if p == pos {
			return
		}
	}
	ps := append(lp[letter], pos)
	sort.Ints(ps)
	lp[letter] = ps
}

// Has reports whether letter has any recorded position.
func (lp LetterPositions) Has(letter string) bool {
	_, ok := lp[letter]
	return ok
}

// Clone returns a deep copy.
func (lp LetterPositions) Clone() LetterPositions {
	out := make(LetterPositions, len(lp))
	for k, v := range lp {
		out[k] = append([]int(nil), v...)
	}
	return out
}

// Empty reports whether no feedback at all has been recorded.
func (c Constraints) Empty() bool {
	return len(c.Green) == 0 && len(c.Yellow) == 0 && len(c.Grey) == 0
}

// Merge folds other into a copy of c and returns it.
func (c Constraints) Merge(other Constraints) Constraints {
	out := Constraints{Green: c.Green.Clone(), Yellow: c.Yellow.Clone(), Grey: c.Grey.Clone()}
	for _, pair := range []struct{ dst, src LetterPositions }{
		{out.Green, other.Green},
		{out.Yellow, other.Yellow},
		{out.Grey, other.Grey},
	} {
		for letter, ps := range pair.src {
			for _, p := range ps {
				pair.dst.Add(letter, p)
			}
		}
	}
	return out
}
