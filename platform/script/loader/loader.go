package loader

import (
	"io"
	"net/url"
)

// Loader is the interface used by the engines to load script content.
type Loader interface {
	// GetReader returns a fresh reader for the script content.
	GetReader() (io.ReadCloser, error)

	// GetSourceURL returns a URL identifying where the content came from.
	GetSourceURL() *url.URL
}
