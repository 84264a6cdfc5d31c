package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

var fixedNow = time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)

type fakeItems struct {
	mu         sync.Mutex
	createID   shop.ID
	createErr  error
	updateErr  error
	deleteErr  error
	seedErr    error
	created    []shop.ItemInput
	updated    []shop.Item
	deleted    []shop.ID
	seeded     []shop.Item
	onSnapshot func([]shop.Item)
	onError    func(error)
	stopped    bool
}

var _ remote.Items = (*fakeItems)(nil)

func (f *fakeItems) FetchAll(context.Context) ([]shop.Item, error) { return nil, nil }

func (f *fakeItems) Subscribe(_ context.Context, onSnapshot func([]shop.Item), onError func(error)) remote.Unsubscribe {
	f.mu.Lock()
	f.onSnapshot = onSnapshot
	f.onError = onError
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.stopped = true
		f.mu.Unlock()
	}
}

func (f *fakeItems) Create(_ context.Context, in shop.ItemInput) (shop.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return f.createID, f.createErr
}

func (f *fakeItems) Update(_ context.Context, item shop.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, item)
	return f.updateErr
}

func (f *fakeItems) Delete(_ context.Context, id shop.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeItems) Seed(_ context.Context, item shop.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeded = append(f.seeded, item)
	return f.seedErr
}

// push delivers a snapshot the way an adapter goroutine would.
func (f *fakeItems) push(items []shop.Item) {
	f.mu.Lock()
	fn := f.onSnapshot
	f.mu.Unlock()
	fn(items)
}

func (f *fakeItems) fail(err error) {
	f.mu.Lock()
	fn := f.onError
	f.mu.Unlock()
	fn(err)
}

type fakeContent struct {
	mu       sync.Mutex
	value    shop.PageContent
	fetchErr error
	saveErr  error
	saved    []shop.PageContent
	onValue  func(shop.PageContent)
	stopped  bool
}

var _ remote.Content = (*fakeContent)(nil)

func (f *fakeContent) Fetch(context.Context) (shop.PageContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.fetchErr
}

func (f *fakeContent) Subscribe(_ context.Context, onValue func(shop.PageContent), _ func(error)) remote.Unsubscribe {
	f.mu.Lock()
	f.onValue = onValue
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.stopped = true
		f.mu.Unlock()
	}
}

func (f *fakeContent) Save(_ context.Context, pc shop.PageContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, pc)
	return f.saveErr
}

func (f *fakeContent) push(pc shop.PageContent) {
	f.mu.Lock()
	fn := f.onValue
	f.mu.Unlock()
	fn(pc)
}

// newTestStore builds an initialized store over an in-memory backend.
func newTestStore(t *testing.T, backend localstore.Backend, items remote.Items, content remote.Content) *Store {
	t.Helper()
	if backend == nil {
		backend = localstore.NewMemory()
	}
	s := New(Options{
		Local:   localstore.New(backend, nil),
		Items:   items,
		Content: content,
		Now:     func() time.Time { return fixedNow },
	})
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func loginOwner(t *testing.T, s *Store) {
	t.Helper()
	if !s.Login(shop.OwnerPassword) {
		t.Fatalf("Login with default secret failed")
	}
}
