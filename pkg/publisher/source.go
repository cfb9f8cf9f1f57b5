package publisher

import (
	"fmt"
	"io"
	"os"
)

// Source supplies the comment body for a publish run. Retrieval is deferred
// until the run actually needs the body, so a missing file only surfaces
// when publishing starts.
type Source interface {
	Retrieve() (string, error)
}

type literalSource struct {
	body string
}

// Literal returns a source backed by an in-memory string.
func Literal(body string) Source {
	return literalSource{body: body}
}

func (s literalSource) Retrieve() (string, error) {
	return s.body, nil
}

type fileSource struct {
	path string
}

// File returns a source that reads the comment body from a file on each
// retrieval.
func File(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Retrieve() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read comment file %s: %w", s.path, err)
	}
	return string(data), nil
}

type readerSource struct {
	r io.Reader
}

// Reader returns a source that drains an io.Reader, typically stdin.
func Reader(r io.Reader) Source {
	return readerSource{r: r}
}

func (s readerSource) Retrieve() (string, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", fmt.Errorf("failed to read comment input: %w", err)
	}
	return string(data), nil
}
