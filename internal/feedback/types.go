// internal/feedback/types.go
//
// Per-cell feedback types.
// Defines:
//   - Mark: colour of a single tile (hit/present/miss/blank).
//   - Cell: one tile of a guess row, i.e. a letter and its mark.

package feedback

// Mark is the evaluation shown on a single tile.
//   - "hit":     letter is correct and in the correct position (green).
//   - "present": letter exists in the answer but in a different position (yellow).
//   - "miss":    letter is not in the answer at this position (grey).
//   - "blank":   nothing typed / not yet evaluated.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
	MarkBlank   Mark = "blank"
)

// Cell is one tile of a guess row.
type Cell struct {
	Letter string `json:"letter"`
	Mark   Mark   `json:"mark"`
}

// Blank reports whether the tile carries no usable feedback. A tile whose
// letter is not exactly one a–z letter (either case) counts as blank.
func (c Cell) Blank() bool {
	switch c.Mark {
	case MarkHit, MarkPresent, MarkMiss:
		return !singleLetter(c.Letter)
	}
	return true
}

func singleLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	b := s[0] | 0x20
	return b >= 'a' && b <= 'z'
}
