// internal/feedback/score.go
//
// Wordle scoring, used to simulate what the game would show for a guess.
//
// Score implements the standard two-pass algorithm:
//
//	Pass 1: exact matches are hits; the remaining answer letters are counted.
//	Pass 2: each non-hit guess letter is present while unused copies remain,
//	        otherwise a miss.
//
// This keeps repeated letters in both guess and answer correct.

package feedback

// Score compares guess against answer. Both must be lowercase a–z of the
// same length; otherwise every tile is a miss.
func Score(guess, answer string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	if len(answer) != n {
		for i := range res {
			res[i] = MarkMiss
		}
		return res
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else if j := idx(answer[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// Simulate scores every guess against answer and returns the rows the
// board would show.
func Simulate(guesses []string, answer string) [][]Cell {
	rows := make([][]Cell, 0, len(guesses))
	for _, g := range guesses {
		marks := Score(g, answer)
		row := make([]Cell, len(g))
		for i := range g {
			row[i] = Cell{Letter: g[i : i+1], Mark: marks[i]}
		}
		rows = append(rows, row)
	}
	return rows
}

// Solved reports whether every mark is a hit.
func Solved(marks []Mark) bool {
	if len(marks) == 0 {
		return false
	}
	for _, m := range marks {
		if m != MarkHit {
			return false
		}
	}
	return true
}

// idx maps a lowercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'a' || b > 'z' {
		return -1
	}
	return int(b - 'a')
}
