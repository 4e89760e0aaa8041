package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/robalobadob/quordle/apps/go-solver/assets"
)

// Source yields the raw lines of a vocabulary resource.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Words returns the raw, un-normalised entries.
	Words(ctx context.Context) ([]string, error)
}

type embedded struct{}

// Embedded is the word bank compiled into the binary.
func Embedded() Source { return embedded{} }

func (embedded) Name() string { return "embedded" }

func (embedded) Words(context.Context) ([]string, error) {
	f, err := assets.WordBank()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

type file struct{ path string }

// File reads a newline-delimited word list from disk.
func File(path string) Source { return file{path: path} }

func (f file) Name() string { return "file:" + f.path }

func (f file) Words(context.Context) ([]string, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

type url struct {
	url    string
	client *http.Client
}

// URL fetches a plain-text word list over HTTP. A nil client means
// http.DefaultClient. Any non-2xx status is a load failure.
func URL(u string, client *http.Client) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return url{url: u, client: client}
}

func (u url) Name() string { return "url:" + u.url }

func (u url) Words(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return nil, err
	}
	res, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	return Parse(res.Body)
}
