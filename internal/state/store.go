package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

var (
	ErrUnauthorized       = errors.New("owner login required")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrItemNotFound       = errors.New("item not found")
)

// SyncState describes the remote connection as last observed.
type SyncState int

const (
	SyncLocalOnly SyncState = iota
	SyncConnecting
	SyncLive
	SyncStale
)

func (s SyncState) String() string {
	switch s {
	case SyncConnecting:
		return "connecting"
	case SyncLive:
		return "live"
	case SyncStale:
		return "stale"
	default:
		return "local"
	}
}

// Options configures a Store.
type Options struct {
	Local *localstore.Store
	// Items and Content are nil in local-only mode.
	Items   remote.Items
	Content remote.Content
	// OwnerSecret is a plain password or a bcrypt hash. Empty uses the
	// built-in demo password.
	OwnerSecret string
	Now         func() time.Time
	Logger      *slog.Logger
}

// Snapshot is an immutable view of the store.
type Snapshot struct {
	Catalog     []shop.Item
	Collections []shop.Collection
	Cart        []shop.CartLine
	CartCount   int
	CartTotal   float64
	Orders      []shop.Order
	Content     shop.PageContent
	Owner       bool

	Sync           SyncState
	LastUpdated    time.Time
	LastError      error
	RemoteFailures int // consecutive remote failures
}

// IsOffline reports whether the remote has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.RemoteFailures >= 2
}

// Store is the storefront state manager.
type Store struct {
	local   *localstore.Store
	items   remote.Items
	content remote.Content
	secret  string
	now     func() time.Time
	logger  *slog.Logger

	mu          sync.RWMutex
	catalog     []shop.Item
	collections []shop.Collection
	cart        []shop.CartLine
	orders      []shop.Order
	page        shop.PageContent
	owner       bool
	seeded      bool
	sync        SyncState
	lastUpdated time.Time
	lastErr     error
	failures    int
	initialized bool
	runCtx      context.Context
	cancel      context.CancelFunc
	stops       []remote.Unsubscribe

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObs   int
}

// New builds a Store holding the built-in defaults. Call Init to load
// persisted state and start remote sync.
func New(opts Options) *Store {
	s := &Store{
		local:     opts.Local,
		items:     opts.Items,
		content:   opts.Content,
		secret:    opts.OwnerSecret,
		now:       opts.Now,
		logger:    opts.Logger,
		observers: make(map[int]func(Snapshot)),
	}
	if s.secret == "" {
		s.secret = shop.OwnerPassword
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.catalog = shop.DefaultCatalog()
	sortByTitle(s.catalog)
	s.collections = shop.DefaultCollections()
	s.page = shop.DefaultContent()
	if s.remoteConfigured() {
		s.sync = SyncConnecting
	}
	return s
}

func (s *Store) remoteConfigured() bool {
	return s.items != nil || s.content != nil
}

// Init loads persisted state, fetches the remote content and starts the
// remote subscriptions. Subscriptions outlive ctx and stop on Close.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return errors.New("store already initialized")
	}
	s.initialized = true
	s.loadLocked()
	s.mu.Unlock()
	s.notify()

	if !s.remoteConfigured() {
		return nil
	}

	if s.content != nil {
		pc, err := s.content.Fetch(ctx)
		switch {
		case err == nil:
			s.applyContent(pc)
		case errors.Is(err, remote.ErrNotFound):
		default:
			s.remoteFailed("fetch page content", err)
		}
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.runCtx = runCtx
	s.cancel = cancel
	s.mu.Unlock()

	var stops []remote.Unsubscribe
	if s.items != nil {
		stops = append(stops, s.items.Subscribe(runCtx, s.applyCatalog, func(err error) {
			s.remoteFailed("catalog subscription", err)
		}))
	}
	if s.content != nil {
		stops = append(stops, s.content.Subscribe(runCtx, s.applyContent, func(err error) {
			s.remoteFailed("content subscription", err)
		}))
	}

	s.mu.Lock()
	s.stops = append(s.stops, stops...)
	s.mu.Unlock()
	return nil
}

// Close stops the remote subscriptions. It does not close the local store.
func (s *Store) Close() {
	s.mu.Lock()
	cancel := s.cancel
	stops := s.stops
	s.cancel = nil
	s.stops = nil
	s.mu.Unlock()

	// Unsubscribe may wait for the adapter goroutine, which may be waiting
	// on s.mu, so the lock must be released first.
	if cancel != nil {
		cancel()
	}
	for _, stop := range stops {
		stop()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Catalog:        shop.CloneItems(s.catalog),
		Collections:    cloneCollections(s.collections),
		Cart:           shop.CloneLines(s.cart),
		CartCount:      shop.CartCount(s.cart),
		CartTotal:      shop.CartTotal(s.cart),
		Orders:         cloneOrders(s.orders),
		Content:        s.page,
		Owner:          s.owner,
		Sync:           s.sync,
		LastUpdated:    s.lastUpdated,
		RemoteFailures: s.failures,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

// Subscribe registers fn to receive a Snapshot after every change. The
// returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify() {
	s.obsMu.Lock()
	if len(s.observers) == 0 {
		s.obsMu.Unlock()
		return
	}
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.observers[id])
	}
	s.obsMu.Unlock()

	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

// remoteFailed logs err and records it for the UI.
func (s *Store) remoteFailed(op string, err error) {
	s.logger.Warn("remote "+op+" failed", "error", err)
	s.mu.Lock()
	s.lastErr = fmt.Errorf("%s: %w", op, err)
	s.failures++
	s.sync = SyncStale
	s.lastUpdated = s.now()
	s.mu.Unlock()
	s.notify()
}

// remoteOKLocked records a successful remote exchange. Callers hold s.mu.
func (s *Store) remoteOKLocked() {
	s.lastErr = nil
	s.failures = 0
	s.sync = SyncLive
	s.lastUpdated = s.now()
}

func (s *Store) requireOwner() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.owner {
		return ErrUnauthorized
	}
	return nil
}

func sortByTitle(items []shop.Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Title < items[j].Title })
}

func cloneOrders(orders []shop.Order) []shop.Order {
	if len(orders) == 0 {
		return nil
	}
	dup := make([]shop.Order, len(orders))
	for i, o := range orders {
		dup[i] = o.Clone()
	}
	return dup
}

func cloneCollections(cols []shop.Collection) []shop.Collection {
	if len(cols) == 0 {
		return nil
	}
	dup := make([]shop.Collection, len(cols))
	for i, c := range cols {
		dup[i] = c.Clone()
	}
	return dup
}
