// Package browser owns the state of one catalog browsing session and turns
// inbound events into recomputed, paginated result views.
package browser

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/paging"
	"github.com/matst80/slask-catalog/pkg/search"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/matst80/slask-catalog/pkg/types"
	"go.uber.org/zap"
)

var ErrSessionClosed = errors.New("session closed")

type Option func(*Session)

func WithId(id string) Option {
	return func(s *Session) { s.id = id }
}

func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

func WithScheduler(scheduler common.Scheduler) Option {
	return func(s *Session) { s.scheduler = scheduler }
}

func WithPipeline(p search.Pipeline) Option {
	return func(s *Session) { s.pipeline = p }
}

func WithTracking(t tracking.Tracking) Option {
	return func(s *Session) { s.tracking = t }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is the single owner of a QueryState and the views derived from it.
// The result view is always recomputed from the immutable catalog, never patched.
// Methods are safe for concurrent use; debounced commits arrive on timer goroutines.
type Session struct {
	id        string
	loader    *catalog.Loader
	pipeline  search.Pipeline
	pageSize  int
	debounce  time.Duration
	scheduler common.Scheduler
	debouncer *common.Debouncer
	tracking  tracking.Tracking
	logger    *zap.Logger

	mu         sync.Mutex
	version    uint64
	started    bool
	closed     bool
	loading    bool
	loadErr    error
	state      types.QueryState
	catalog    types.Catalog
	categories []string
	results    []types.Product
	page       paging.Page[types.Product]
	listeners  map[int]func(View)
	listenerId int
}

func NewSession(loader *catalog.Loader, opts ...Option) *Session {
	s := &Session{
		loader:    loader,
		pipeline:  search.DefaultPipeline,
		pageSize:  paging.DefaultPageSize,
		debounce:  common.DefaultDebounce,
		scheduler: common.TimerScheduler{},
		logger:    zap.NewNop(),
		loading:   true,
		listeners: make(map[int]func(View)),
		results:   []types.Product{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = common.GenerateSessionId()
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	s.debouncer = common.NewDebouncer(s.debounce, s.scheduler)
	s.repaginate()
	return s
}

func (s *Session) Id() string {
	return s.id
}

// Start loads the catalog. Only the first call fetches, later calls return at once.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	res := s.loader.Load(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.loading = false
	if res.State == catalog.StateLoaded {
		s.catalog = res.Catalog
		s.categories = res.Catalog.Categories()
		s.recompute()
	} else {
		s.loadErr = res.Err
		if s.loadErr == nil {
			s.loadErr = catalog.ErrNetworkFailure
		}
	}
	s.changed()
	s.mu.Unlock()

	s.notify()
	return res.Err
}

// SetSearchText records raw input and schedules the debounced commit. Only the
// last text within the quiet period is committed.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.RawSearchText = text
	s.debouncer.Debounce(func() {
		s.commitSearch(text)
	})
	s.changed()
	s.mu.Unlock()

	s.notify()
}

func (s *Session) commitSearch(text string) {
	s.mu.Lock()
	if s.closed || text == s.state.DebouncedSearchText {
		s.mu.Unlock()
		return
	}
	s.state.DebouncedSearchText = text
	s.state.PageIndex = 0
	s.recompute()
	s.changed()
	event := s.searchEvent()
	s.mu.Unlock()

	s.logger.Debug("search committed", zap.String("query", text), zap.Int("results", event.NumberOfResults))
	s.track(event)
	s.notify()
}

// SetCategory filters on an exact category label, empty clears the filter.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	if s.closed || category == s.state.Category {
		s.mu.Unlock()
		return
	}
	s.state.Category = category
	s.state.PageIndex = 0
	s.recompute()
	s.changed()
	event := s.searchEvent()
	s.mu.Unlock()

	s.track(event)
	s.notify()
}

// SetSort reorders the result view and keeps the current page when it still exists.
func (s *Session) SetSort(key types.SortKey) {
	s.mu.Lock()
	if s.closed || key == s.state.Sort {
		s.mu.Unlock()
		return
	}
	s.state.Sort = key
	s.recompute()
	s.changed()
	s.mu.Unlock()

	s.notify()
}

// NextPage moves forward one page, it reports false when already on the last page.
func (s *Session) NextPage() bool {
	return s.movePage(func(p paging.Page[types.Product]) int { return p.Next() })
}

// PrevPage moves back one page, it reports false when already on the first page.
func (s *Session) PrevPage() bool {
	return s.movePage(func(p paging.Page[types.Product]) int { return p.Prev() })
}

func (s *Session) movePage(target func(paging.Page[types.Product]) int) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	next := target(s.page)
	if next == s.page.Index {
		s.mu.Unlock()
		return false
	}
	s.state.PageIndex = next
	s.repaginate()
	s.changed()
	s.mu.Unlock()

	s.notify()
	return true
}

// Subscribe registers fn to receive the view after every change. The returned
// func removes the listener.
func (s *Session) Subscribe(fn func(View)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	s.listenerId++
	id := s.listenerId
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close tears the session down. A pending debounced commit is cancelled and
// every later event is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.debouncer.Stop()
	clear(s.listeners)
	s.logger.Debug("session closed")
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		SessionId:  s.id,
		Version:    s.version,
		Items:      []types.Product{},
		PageSize:   s.pageSize,
		Loading:    s.loading,
		Categories: slices.Clone(s.categories),
		Query:      s.state,
	}
	if v.Categories == nil {
		v.Categories = []string{}
	}
	if s.loadErr != nil {
		msg := catalog.FailureMessage
		v.Error = &msg
		return v
	}
	if s.loading {
		return v
	}
	v.Items = slices.Clone(s.page.Items)
	v.PageIndex = s.page.Index
	v.TotalPages = s.page.TotalPages
	v.TotalItems = s.page.TotalItems
	v.CanGoPrev = s.page.CanGoPrev
	v.CanGoNext = s.page.CanGoNext
	if len(s.results) == 0 {
		v.EmptyMessage = NoResultsMessage
	}
	return v
}

func (s *Session) recompute() {
	s.results = s.pipeline.ComputeQuery(s.catalog, s.state)
	s.repaginate()
}

func (s *Session) repaginate() {
	s.page = paging.Paginate(s.results, s.state.PageIndex, s.pageSize)
	s.state.PageIndex = s.page.Index
}

func (s *Session) changed() {
	s.version++
}

func (s *Session) searchEvent() tracking.SearchEvent {
	return tracking.SearchEvent{
		SessionId:       s.id,
		Query:           s.state.DebouncedSearchText,
		Category:        s.state.Category,
		Sort:            string(s.state.Sort),
		NumberOfResults: len(s.results),
		Page:            s.state.PageIndex,
		Time:            time.Now(),
	}
}

func (s *Session) track(event tracking.SearchEvent) {
	if s.tracking == nil {
		return
	}
	if err := s.tracking.TrackSearch(event); err != nil {
		s.logger.Warn("tracking failed", zap.Error(err))
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	if s.closed || len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	view := s.viewLocked()
	listeners := make([]func(View), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
}
