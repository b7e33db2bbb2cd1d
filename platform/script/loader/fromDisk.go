package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FromDisk implements the Loader interface for a script file on disk.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk creates a new loader for the given absolute file path.
// A "file://" prefix is accepted and stripped; relative paths are rejected.
func NewFromDisk(path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")

	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("%w: relative paths are not supported", ErrScriptNotAvailable)
	}

	path = filepath.Clean(path)
	if path == "" || path == "." || path == "/" {
		return nil, fmt.Errorf("%w: path is empty or invalid", ErrScriptNotAvailable)
	}

	u, err := url.Parse("file://" + path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}

	return &FromDisk{
		path:      path,
		sourceURL: u,
	}, nil
}

func (l *FromDisk) String() string {
	return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
}

// GetReader opens the file and returns it; the caller closes it.
func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	return os.Open(l.path)
}

// GetSourceURL returns the source URL of the script.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
