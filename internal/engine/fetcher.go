package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// VCardFetcher retrieves a remote address book.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher over plain HTTP(S) with basic auth.
type HTTPFetcher struct {
	Client *http.Client

	// MaxSize caps the number of bytes read from a response body.
	MaxSize int64
}

// NewHTTPFetcher returns a fetcher with the default timeout and size cap.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:  &http.Client{Timeout: config.HTTPTimeout},
		MaxSize: config.MaxHTTPResponseSize,
	}
}

// Fetch downloads targetURL. Only http and https are accepted, and the query
// string is kept out of the logs since address books often carry tokens there.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	// 1. Validate the URL
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Strip credentials and query before logging.
	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug(config.MsgFetchStart)

	// 2. Build the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestCreate, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	// 3. Execute
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	log.Info(config.MsgFetchBody, slog.Int64(config.LogKeyLength, resp.ContentLength))

	// 4. Cap the body to protect against oversized responses.
	limit := f.MaxSize
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, limit),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser caps reads while still closing the underlying body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
