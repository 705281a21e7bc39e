// Package server publishes the calendar feed and the stored configuration on
// a local HTTP port so calendar applications can subscribe to them.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// cacheItem stores one rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123, as required by HTTP headers
}

func newCacheItem(data []byte) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

// document is a published resource. Reads are lock-free: the feed is polled
// far more often than it is regenerated.
type document struct {
	name        string
	contentType string
	cache       atomic.Pointer[cacheItem]
}

func (d *document) update(data []byte) {
	item := newCacheItem(data)
	d.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, d.name,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// ServeHTTP serves the document with conditional request support.
func (d *document) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := d.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, d.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if notModifiedSince(r.Header.Get(config.HeaderIfModifiedSince), item.lastModified) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRoute, d.name,
				config.LogKeyError, err,
			)
		}
	}
}

// notModifiedSince reports whether content stamped lastModified is not newer
// than the client's copy.
func notModifiedSince(since, lastModified string) bool {
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// FeedServer serves the iCalendar feed on "/" and "/calendar.ics", and the
// stored configuration envelope on "/config.json".
type FeedServer struct {
	Port string

	feed   document
	stored document
}

// NewFeedServer creates a server bound to port on the loopback interface.
func NewFeedServer(port string) *FeedServer {
	s := &FeedServer{Port: port}
	s.feed.name = config.RouteCalendar
	s.feed.contentType = config.MimeTextCalendar
	s.stored.name = config.RouteConfig
	s.stored.contentType = config.MimeJSON
	return s
}

// Handler returns the routing table. Unknown paths get 404.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(config.RouteRootExact, &s.feed)
	mux.Handle(config.RouteCalendar, &s.feed)
	mux.Handle(config.RouteConfig, &s.stored)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// PublishCalendar atomically replaces the served feed.
func (s *FeedServer) PublishCalendar(ics []byte) {
	s.feed.update(ics)
}

// PublishConfig atomically replaces the served configuration document.
func (s *FeedServer) PublishConfig(doc []byte) {
	s.stored.update(doc)
}

// Publish replaces both documents.
func (s *FeedServer) Publish(ics, doc []byte) {
	s.PublishCalendar(ics)
	s.PublishConfig(doc)
}
