// internal/words/words.go
//
// Vocabulary store for the solver.
//
// Responsibilities:
//   - Load the raw word list once from a Source (embedded asset, file, URL or SQLite).
//   - Normalise it: trim, lowercase, skip blank lines and # comments, drop duplicates.
//   - Keep only words of the configured length made of a–z; everything else is
//     dropped and counted in a warning so a bad resource is visible in the logs.
//   - Expose the result as an immutable, ordered Vocabulary shared by every board.
//
// Loading fails with a *LoadError when the source cannot be read or when nothing
// survives normalisation (errors.Is(err, ErrEmpty)).

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultWordLength is the Quordle word length.
const DefaultWordLength = 5

// ErrEmpty is wrapped by LoadError when the resource holds no usable words.
var ErrEmpty = errors.New("vocabulary is empty")

// LoadError reports a vocabulary that could not be loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("words: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Vocabulary is an ordered, read-only list of equal-length words.
type Vocabulary struct {
	words  []string
	set    map[string]struct{}
	length int
}

// New builds a Vocabulary from already-normalised words. It is mainly useful
// for tests and fixtures; Load is the normal entry point.
func New(list []string) *Vocabulary {
	v := &Vocabulary{
		words: append([]string(nil), list...),
		set:   make(map[string]struct{}, len(list)),
	}
	for _, w := range v.words {
		v.set[w] = struct{}{}
	}
	if len(v.words) > 0 {
		v.length = len(v.words[0])
	}
	return v
}

// Words returns a copy of the words in load order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// WordLength returns the common word length (0 for an empty vocabulary).
func (v *Vocabulary) WordLength() int { return v.length }

// Contains reports whether w is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool {
	_, ok := v.set[strings.ToLower(w)]
	return ok
}

type loadOptions struct {
	length int
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithWordLength sets the accepted word length (default 5).
func WithWordLength(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.length = n
		}
	}
}

// Load reads src once and returns the validated Vocabulary.
func Load(ctx context.Context, src Source, opts ...LoadOption) (*Vocabulary, error) {
	o := loadOptions{length: DefaultWordLength}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := src.Words(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}

	list, dropped := normalize(raw, o.length)
	if dropped > 0 {
		log.Warn().
			Str("source", src.Name()).
			Int("dropped", dropped).
			Int("length", o.length).
			Msg("skipped words with wrong length or characters")
	}
	if len(list) == 0 {
		return nil, &LoadError{Source: src.Name(), Err: ErrEmpty}
	}

	log.Info().Str("source", src.Name()).Int("words", len(list)).Msg("vocabulary loaded")
	return New(list), nil
}

// Parse reads one word per line, trimming whitespace and lowercasing.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// normalize keeps valid words of the given length, first occurrence wins.
func normalize(raw []string, length int) ([]string, int) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	dropped := 0
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if len(w) != length || !isAlpha(w) {
			dropped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, dropped
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
