package loader

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FromHTTP implements the Loader interface for scripts fetched over HTTP.
// The content is fetched on every GetReader call, so a unit recompiled from
// this loader picks up upstream changes.
type FromHTTP struct {
	sourceURL *url.URL
	client    *http.Client
	username  string
	password  string
}

// HTTPOption configures a FromHTTP loader.
type HTTPOption func(*FromHTTP)

// WithBasicAuth attaches HTTP basic-auth credentials to every fetch.
func WithBasicAuth(username, password string) HTTPOption {
	return func(l *FromHTTP) {
		l.username = username
		l.password = password
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(l *FromHTTP) {
		l.client = client
	}
}

// NewFromHTTP creates a new loader for an http:// or https:// URL.
func NewFromHTTP(rawURL string, opts ...HTTPOption) (*FromHTTP, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, u.Scheme)
	}

	l := &FromHTTP{
		sourceURL: u,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.sourceURL)
}

// GetReader fetches the script over HTTP and returns the response body.
// The caller is responsible for closing the reader.
func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, l.sourceURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if l.username != "" || l.password != "" {
		req.SetBasicAuth(l.username, l.password)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %s", ErrScriptNotAvailable, resp.Status)
	}

	return resp.Body, nil
}

// GetSourceURL returns the source URL of the script.
func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}
