// Package assets embeds the default vocabulary and opening-word lists.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed word-bank.txt openers.txt
var FS embed.FS

// WordBank opens the embedded vocabulary resource. Callers close it.
func WordBank() (io.ReadCloser, error) {
	return FS.Open("word-bank.txt")
}

// Openers returns the embedded strong opening words.
func Openers() ([]string, error) {
	f, err := FS.Open("openers.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
