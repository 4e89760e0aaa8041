// internal/feedback/extract.go
//
// Turns observed tiles into the constraint maps consumed by the solver.
//
// Rows are the guesses of one board, top to bottom; the position of a tile is
// its index within the row. Positions for a letter accumulate across rows.
// Blank tiles contribute nothing. A board with no non-blank tile at all is
// reported as blank so the caller can suggest an opening word instead.

package feedback

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/robalobadob/quordle/apps/go-solver/internal/solver"
)

// ErrBadRow is returned by ParseRow for malformed row patterns.
var ErrBadRow = errors.New("feedback: bad row")

// Extract folds every row into green/yellow/grey maps.
func Extract(rows [][]Cell) (c solver.Constraints, blank bool) {
	c = solver.NewConstraints()
	blank = true
	for _, row := range rows {
		for pos, cell := range row {
			if cell.Blank() {
				continue
			}
			blank = false
			letter := strings.ToLower(cell.Letter)
			switch cell.Mark {
			case MarkHit:
				c.Green.Add(letter, pos)
			case MarkPresent:
				c.Yellow.Add(letter, pos)
			case MarkMiss:
				c.Grey.Add(letter, pos)
			}
		}
	}
	return c, blank
}

var labelLetter = regexp.MustCompile(`'(\w+)'`)

// ParseLabel reads a tile's aria-label as rendered by the game, e.g.
// "'C' (letter 1) is incorrect". Anything unrecognised is a blank tile.
func ParseLabel(label string) Cell {
	m := labelLetter.FindStringSubmatch(label)
	if m == nil || m[1] == "Blank" {
		return Cell{Mark: MarkBlank}
	}
	letter := strings.ToLower(m[1])
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return Cell{Mark: MarkBlank}
	}
	switch {
	case strings.Contains(label, "is correct"):
		return Cell{Letter: letter, Mark: MarkHit}
	case strings.Contains(label, "is incorrect"):
		return Cell{Letter: letter, Mark: MarkMiss}
	case strings.Contains(label, "is in a different spot"):
		return Cell{Letter: letter, Mark: MarkPresent}
	}
	return Cell{Mark: MarkBlank}
}

// ParseLabels converts a grid of aria-labels into rows of cells.
func ParseLabels(labels [][]string) [][]Cell {
	rows := make([][]Cell, len(labels))
	for i, row := range labels {
		rows[i] = make([]Cell, len(row))
		for j, l := range row {
			rows[i][j] = ParseLabel(l)
		}
	}
	return rows
}

// ParseRow parses the compact "word:marks" notation, e.g. "crane:xggxg",
// where g is green, y is yellow and x or . is grey.
func ParseRow(s string) ([]Cell, error) {
	word, marks, ok := strings.Cut(strings.TrimSpace(s), ":")
	word = strings.ToLower(word)
	marks = strings.ToLower(marks)
	if !ok || word == "" || len(word) != len(marks) {
		return nil, fmt.Errorf("%w: %q (want word:marks of equal length)", ErrBadRow, s)
	}
	row := make([]Cell, len(word))
	for i := range word {
		if word[i] < 'a' || word[i] > 'z' {
			return nil, fmt.Errorf("%w: %q has non-letter %q", ErrBadRow, s, word[i])
		}
		var m Mark
		switch marks[i] {
		case 'g':
			m = MarkHit
		case 'y':
			m = MarkPresent
		case 'x', '.':
			m = MarkMiss
		default:
			return nil, fmt.Errorf("%w: %q has unknown mark %q", ErrBadRow, s, marks[i])
		}
		row[i] = Cell{Letter: word[i : i+1], Mark: m}
	}
	return row, nil
}
