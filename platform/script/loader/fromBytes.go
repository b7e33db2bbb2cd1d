package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"unicode"

	"github.com/robbyt/go-toolscript/internal/helpers"
)

// FromBytes implements the Loader interface for content held in a byte slice.
type FromBytes struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromBytes creates a new Loader from a byte slice. Content that is
// empty or contains only whitespace is rejected.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(content) == 0 || isOnlyWhitespace(content) {
		return nil, fmt.Errorf("%w: content is empty", ErrScriptNotAvailable)
	}

	u, err := url.Parse("bytes://inline/" + helpers.SHA256Bytes(content)[:8])
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}

	return &FromBytes{
		content:   content,
		sourceURL: u,
	}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", len(l.content))
}

// GetReader returns a new reader over the stored content.
func (l *FromBytes) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

// GetSourceURL returns the source URL of the script.
func (l *FromBytes) GetSourceURL() *url.URL {
	return l.sourceURL
}

func isOnlyWhitespace(data []byte) bool {
	for _, b := range data {
		if !unicode.IsSpace(rune(b)) {
			return false
		}
	}
	return true
}
