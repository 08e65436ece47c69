// Package server exposes browsing sessions over HTTP as JSON views.
package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matst80/slask-catalog/pkg/browser"
	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/search"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcatalog_sessions_active",
		Help: "The number of open browsing sessions",
	})
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcatalog_events_total",
		Help: "The total number of session events received",
	}, []string{"event"})
)

// DefaultSessionIdle is how long a session survives without requests, same as the cookie.
const DefaultSessionIdle = 2 * time.Hour

type sessionEntry struct {
	session  *browser.Session
	lastSeen atomic.Int64
}

func (e *sessionEntry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}

type WebServer struct {
	Config    *config.Config
	NewLoader func() *catalog.Loader
	Tracking  tracking.Tracking
	Logger    *zap.Logger
	Pipeline  search.Pipeline

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// NewWebServer wires a server that creates one loader per session from cfg.
func NewWebServer(cfg *config.Config, trk tracking.Tracking, logger *zap.Logger) (*WebServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pipeline, err := search.NewPipeline(cfg.Locale)
	if err != nil {
		return nil, err
	}
	ws := &WebServer{
		Config:   cfg,
		Tracking: trk,
		Logger:   logger,
		Pipeline: pipeline,
		sessions: make(map[string]*sessionEntry),
	}
	ws.NewLoader = func() *catalog.Loader {
		fetcher := catalog.NewHttpFetcher(cfg.CatalogUrl)
		fetcher.Timeout = cfg.FetchTimeout()
		return catalog.NewLoader(fetcher, logger)
	}
	ws.ctx, ws.cancel = context.WithCancel(context.Background())
	return ws, nil
}

func (ws *WebServer) createSession() *browser.Session {
	opts := []browser.Option{
		browser.WithPageSize(ws.Config.PageSize),
		browser.WithDebounce(ws.Config.Debounce()),
		browser.WithPipeline(ws.Pipeline),
		browser.WithLogger(ws.Logger),
	}
	if ws.Tracking != nil {
		opts = append(opts, browser.WithTracking(ws.Tracking))
	}
	session := browser.NewSession(ws.NewLoader(), opts...)

	entry := &sessionEntry{session: session}
	entry.touch(time.Now())
	ws.mu.Lock()
	ws.sessions[session.Id()] = entry
	ws.mu.Unlock()
	sessionsActive.Inc()

	go func() {
		if err := session.Start(ws.ctx); err != nil {
			ws.Logger.Debug("session start failed", zap.String("session", session.Id()), zap.Error(err))
		}
	}()
	return session
}

func (ws *WebServer) getSession(id string) (*browser.Session, bool) {
	ws.mu.RLock()
	entry, ok := ws.sessions[id]
	ws.mu.RUnlock()
	if !ok {
		return nil, false
	}
	entry.touch(time.Now())
	return entry.session, true
}

func (ws *WebServer) removeSession(id string) bool {
	return ws.removeSessionIf(id, nil)
}

// removeSessionIf deletes the session when keep is nil or returns false for
// its entry, checked under the write lock.
func (ws *WebServer) removeSessionIf(id string, keep func(*sessionEntry) bool) bool {
	ws.mu.Lock()
	entry, ok := ws.sessions[id]
	if ok && keep != nil && keep(entry) {
		ok = false
	}
	if ok {
		delete(ws.sessions, id)
	}
	ws.mu.Unlock()
	if !ok {
		return false
	}
	entry.session.Close()
	sessionsActive.Dec()
	return true
}

func (ws *WebServer) SessionCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.sessions)
}

// EvictIdle closes sessions not seen since before now minus maxIdle and returns
// how many were removed.
func (ws *WebServer) EvictIdle(now time.Time, maxIdle time.Duration) int {
	cutoff := now.Add(-maxIdle).UnixNano()
	return ws.evictStale(ws.staleSessions(cutoff), cutoff)
}

func (ws *WebServer) staleSessions(cutoff int64) []string {
	var stale []string
	ws.mu.RLock()
	for id, entry := range ws.sessions {
		if entry.lastSeen.Load() < cutoff {
			stale = append(stale, id)
		}
	}
	ws.mu.RUnlock()
	return stale
}

// evictStale removes the given sessions unless they were touched after cutoff.
func (ws *WebServer) evictStale(ids []string, cutoff int64) int {
	removed := 0
	for _, id := range ids {
		if ws.removeSessionIf(id, func(e *sessionEntry) bool { return e.lastSeen.Load() >= cutoff }) {
			removed++
		}
	}
	if removed > 0 {
		ws.Logger.Info("evicted idle sessions", zap.Int("count", removed))
	}
	return removed
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (ws *WebServer) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			ws.EvictIdle(now, maxIdle)
		}
	}
}

// CloseAll closes every session and cancels loads still in flight. Used as a shutdown hook.
func (ws *WebServer) CloseAll(ctx context.Context) error {
	ws.cancel()
	ws.mu.Lock()
	entries := ws.sessions
	ws.sessions = make(map[string]*sessionEntry)
	ws.mu.Unlock()

	for _, entry := range entries {
		entry.session.Close()
		sessionsActive.Dec()
	}
	ws.Logger.Info("closed sessions", zap.Int("count", len(entries)))
	return ctx.Err()
}

func (ws *WebServer) Handler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv.HandleFunc("POST /api/session", ws.jsonHandler(ws.CreateSession))
	srv.HandleFunc("DELETE /api/session", ws.jsonHandler(ws.DeleteSession))
	srv.HandleFunc("GET /api/view", ws.jsonHandler(ws.sessionHandler("view", ws.GetView)))
	srv.HandleFunc("GET /api/categories", ws.jsonHandler(ws.sessionHandler("categories", ws.GetCategories)))
	srv.HandleFunc("POST /api/search", ws.jsonHandler(ws.sessionHandler("search", ws.Search)))
	srv.HandleFunc("POST /api/category", ws.jsonHandler(ws.sessionHandler("category", ws.Category)))
	srv.HandleFunc("POST /api/sort", ws.jsonHandler(ws.sessionHandler("sort", ws.Sort)))
	srv.HandleFunc("POST /api/page/next", ws.jsonHandler(ws.sessionHandler("next", ws.NextPage)))
	srv.HandleFunc("POST /api/page/prev", ws.jsonHandler(ws.sessionHandler("prev", ws.PrevPage)))
	srv.HandleFunc("OPTIONS /api/", ws.jsonHandler(nil))
	return srv
}
