package listdetail

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// ListFunc fetches one page of list data.
type ListFunc[T any] func(ctx context.Context, params ListViewParams) (ListViewResponse[T], error)

// DetailFunc fetches one item's detail.
type DetailFunc[D any] func(ctx context.Context, id EntityID) (DetailViewData[D], error)

// DefaultViewportWidth is assumed until SetViewportWidth is called.
const DefaultViewportWidth = 1280

// Options configure a Context. LoadList and LoadDetail are the collaborators
// that reach the outside world; everything else is optional.
type Options[T Entity, D any] struct {
	// EntityType namespaces cache keys.
	EntityType    string
	Cache         CacheConfig
	SelectionMode SelectionMode
	DefaultParams ListViewParams
	SearchDelay   time.Duration
	InitialWidth  int

	LoadList   ListFunc[T]
	LoadDetail DetailFunc[D]

	Clock  clockwork.Clock
	Logger *zerolog.Logger
}

type listener[T Entity, D any] struct {
	id int
	fn func(State[T, D])
}

// Context owns the state of one mounted list-detail view. All actions are
// safe for concurrent use. Actions that reach a collaborator block until it
// returns; callers that must not block (a UI event loop) run them on their
// own goroutine.
type Context[T Entity, D any] struct {
	entityType string
	cacheCfg   CacheConfig
	loadList   ListFunc[T]
	loadDetail DetailFunc[D]
	cache      *Cache
	search     *SearchController
	clock      clockwork.Clock
	log        zerolog.Logger

	mu        sync.Mutex
	ctx       context.Context
	st        State[T, D]
	selection *Selection
	listSeq   uint64
	detailSeq uint64

	lmu          sync.Mutex
	listeners    []listener[T, D]
	nextListener int

	nmu          sync.Mutex
	pending      *State[T, D]
	notifying    bool
	lastNotified uint64
}

// New builds an unmounted Context.
func New[T Entity, D any](opts Options[T, D]) *Context[T, D] {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	entityType := namespaceOrDefault(opts.EntityType)
	cacheCfg := opts.Cache.withDefaults()
	width := opts.InitialWidth
	if width <= 0 {
		width = DefaultViewportWidth
	}

	c := &Context[T, D]{
		entityType: entityType,
		cacheCfg:   cacheCfg,
		loadList:   opts.LoadList,
		loadDetail: opts.LoadDetail,
		cache:      NewCache(cacheCfg, clock),
		clock:      clock,
		log:        logger.With().Str("entity", entityType).Logger(),
		ctx:        context.Background(),
		selection:  NewSelection(opts.SelectionMode),
	}
	params := opts.DefaultParams.Normalize()
	c.search = NewSearchController(clock, opts.SearchDelay, c.commitQuery)
	c.search.Reset(params.Query)
	c.st = State[T, D]{
		EntityType: entityType,
		Params:     params,
		List:       ListViewResponse[T]{Data: []T{}},
		Selection:  c.selection.state(),
		Responsive: NewResponsiveState(width),
	}
	return c
}

// Mount binds the Context to ctx and loads the default page. ctx bounds every
// later collaborator call, including ones started by the search timer.
func (c *Context[T, D]) Mount(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	c.ctx = ctx
	params := c.st.Params
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

// Close stops the search timer and drops all listeners.
func (c *Context[T, D]) Close() {
	c.search.Stop()
	c.lmu.Lock()
	c.listeners = nil
	c.lmu.Unlock()
}

// Subscribe registers fn for every published State and returns a function
// that removes it. fn may call back into the Context; the nested publish is
// delivered after fn returns.
func (c *Context[T, D]) Subscribe(fn func(State[T, D])) (unsubscribe func()) {
	c.lmu.Lock()
	c.nextListener++
	id := c.nextListener
	c.listeners = append(c.listeners, listener[T, D]{id: id, fn: fn})
	c.lmu.Unlock()

	return func() {
		c.lmu.Lock()
		defer c.lmu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current State.
func (c *Context[T, D]) Snapshot() State[T, D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Health summarizes load activity without copying the whole state.
type Health struct {
	ListLoading   bool
	ListFailures  int
	HasList       bool
	SearchPending bool
	LastUpdated   time.Time
}

// Health reports the Context's current load activity.
func (c *Context[T, D]) Health() Health {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Health{
		ListLoading:   c.st.ListLoading,
		ListFailures:  c.st.ListFailures,
		HasList:       c.st.HasList,
		SearchPending: c.search.Pending(),
		LastUpdated:   c.st.LastUpdated,
	}
}

// Cache exposes the Context's cache for diagnostics and tests.
func (c *Context[T, D]) Cache() *Cache {
	return c.cache
}

// SetViewportWidth records a resize. Only the responsive state changes.
func (c *Context[T, D]) SetViewportWidth(width int) {
	c.mu.Lock()
	next := NewResponsiveState(width)
	if next == c.st.Responsive {
		c.mu.Unlock()
		return
	}
	c.st.Responsive = next
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// ToggleSelection applies the selection mode's rule for id.
func (c *Context[T, D]) ToggleSelection(id EntityID) {
	c.updateSelection(func(s *Selection) bool { return s.Select(id) })
}

// SelectAll selects exactly the rows of the loaded page (multiple mode only).
func (c *Context[T, D]) SelectAll() {
	c.mu.Lock()
	ids := make([]EntityID, 0, len(c.st.List.Data))
	for _, item := range c.st.List.Data {
		ids = append(ids, item.EntityID())
	}
	c.mu.Unlock()
	c.updateSelection(func(s *Selection) bool { return s.SelectAll(ids) })
}

// ClearSelection empties the selection.
func (c *Context[T, D]) ClearSelection() {
	c.updateSelection(func(s *Selection) bool { return s.Clear() })
}

func (c *Context[T, D]) updateSelection(apply func(*Selection) bool) {
	c.mu.Lock()
	if !apply(c.selection) {
		c.mu.Unlock()
		return
	}
	c.st.Selection = c.selection.state()
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Context[T, D]) snapshotLocked() State[T, D] {
	snap := c.st.clone()
	snap.SearchText = c.search.Text()
	snap.SearchPending = c.search.Pending()
	snap.Cache = c.cache.Stats()
	return snap
}

// publishLocked bumps the version and captures the state to deliver.
func (c *Context[T, D]) publishLocked() State[T, D] {
	c.st.Version++
	c.st.LastUpdated = c.clock.Now()
	return c.snapshotLocked()
}

// notify delivers snap to listeners. A goroutine already delivering picks up
// newer snapshots queued by others, so listeners see versions in order and
// a listener may call back into the Context without deadlocking.
func (c *Context[T, D]) notify(snap State[T, D]) {
	c.nmu.Lock()
	if c.pending == nil || snap.Version > c.pending.Version {
		c.pending = &snap
	}
	if c.notifying {
		c.nmu.Unlock()
		return
	}
	c.notifying = true
	for c.pending != nil {
		next := *c.pending
		c.pending = nil
		if next.Version <= c.lastNotified {
			continue
		}
		c.lastNotified = next.Version
		c.nmu.Unlock()
		c.deliver(next)
		c.nmu.Lock()
	}
	c.notifying = false
	c.nmu.Unlock()
}

func (c *Context[T, D]) deliver(snap State[T, D]) {
	c.lmu.Lock()
	listeners := make([]listener[T, D], len(c.listeners))
	copy(listeners, c.listeners)
	c.lmu.Unlock()

	for _, l := range listeners {
		l.fn(snap.clone())
	}
}

func (c *Context[T, D]) ctxLocked() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
