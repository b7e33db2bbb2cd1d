package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-toolscript/internal/helpers"
)

// FromIoReader implements the Loader interface for content read once from
// an io.Reader. The content is buffered in memory at construction time so
// GetReader can be called repeatedly.
type FromIoReader struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromIoReader drains the reader and creates a new in-memory loader.
// The name is used only for the source URL.
func NewFromIoReader(r io.Reader, name string) (*FromIoReader, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrScriptNotAvailable)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrScriptNotAvailable)
	}

	if name == "" {
		name = "unnamed"
	}

	u, err := url.Parse(
		fmt.Sprintf("reader://%s/%s", name, helpers.SHA256Bytes(content)[:8]))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}

	return &FromIoReader{
		content:   content,
		sourceURL: u,
	}, nil
}

func (l *FromIoReader) String() string {
	return fmt.Sprintf("loader.FromIoReader{Bytes: %d}", len(l.content))
}

// GetReader returns a new reader over the buffered content.
func (l *FromIoReader) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

// GetSourceURL returns the source URL of the script.
func (l *FromIoReader) GetSourceURL() *url.URL {
	return l.sourceURL
}
