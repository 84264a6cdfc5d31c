package state

import (
	"context"
	"testing"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

func TestNew_LocalOnlyDefaults(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	snap := s.Snapshot()
	if snap.Sync != SyncLocalOnly {
		t.Fatalf("Sync = %v, want local", snap.Sync)
	}
	if snap.Content != shop.DefaultContent() {
		t.Fatalf("Content = %#v, want defaults", snap.Content)
	}
	if len(snap.Collections) != len(shop.DefaultCollections()) {
		t.Fatalf("Collections = %d, want defaults", len(snap.Collections))
	}
	if snap.Owner || snap.CartCount != 0 || len(snap.Orders) != 0 {
		t.Fatalf("snapshot = %#v, want empty session", snap)
	}
}

func TestInit_OnlyOnce(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	if err := s.Init(context.Background()); err == nil {
		t.Fatalf("second Init returned nil error")
	}
}

func TestInit_MalformedLocalValuesFallBack(t *testing.T) {
	backend := localstore.NewMemory()
	for _, key := range []string{localstore.KeyCatalog, localstore.KeyContent, localstore.KeyCart} {
		if err := backend.Set(key, []byte("{broken")); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	s := newTestStore(t, backend, nil, nil)
	if len(s.Catalog()) != len(shop.DefaultCatalog()) {
		t.Fatalf("catalog = %d items, want defaults", len(s.Catalog()))
	}
	if s.Content() != shop.DefaultContent() {
		t.Fatalf("content not defaulted")
	}
	if len(s.Cart()) != 0 {
		t.Fatalf("cart not empty")
	}
}

func TestInit_NormalizesStoredCart(t *testing.T) {
	backend := localstore.NewMemory()
	raw := `[{"id":7,"title":"A","price":2,"quantity":1},{"id":"7","title":"A","price":2,"quantity":2},{"id":"8","title":"B","price":1,"quantity":0}]`
	if err := backend.Set(localstore.KeyCart, []byte(raw)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s := newTestStore(t, backend, nil, nil)
	cart := s.Cart()
	if len(cart) != 1 || cart[0].ID != "7" || cart[0].Quantity != 3 {
		t.Fatalf("cart = %#v, want one line 7 x3", cart)
	}
}

func TestSubscribe_NotifiesUntilCancelled(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)

	var counts []int
	cancel := s.Subscribe(func(snap Snapshot) { counts = append(counts, snap.CartCount) })
	s.AddToCart(shop.Item{ID: "a", Title: "A", Price: 1}, 1)
	s.AddToCart(shop.Item{ID: "a", Title: "A", Price: 1}, 2)
	cancel()
	s.ClearCart()

	if len(counts) != 2 || counts[0] != 1 || counts[1] != 3 {
		t.Fatalf("observed counts = %v, want [1 3]", counts)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	s.AddToCart(shop.Item{ID: "a", Title: "A", Price: 1}, 1)

	snap := s.Snapshot()
	snap.Cart[0].Quantity = 50
	snap.Catalog[0].Title = "mutated"
	snap.Collections[0].ItemIDs[0] = "mutated"

	fresh := s.Snapshot()
	if fresh.Cart[0].Quantity != 1 || fresh.Catalog[0].Title == "mutated" || fresh.Collections[0].ItemIDs[0] == "mutated" {
		t.Fatalf("snapshot shares memory with the store")
	}
}

func TestClose_StopsSubscriptions(t *testing.T) {
	items := &fakeItems{}
	content := &fakeContent{fetchErr: remote.ErrNotFound}
	s := newTestStore(t, nil, items, content)
	if s.Snapshot().Sync != SyncConnecting {
		t.Fatalf("Sync = %v, want connecting before the first snapshot", s.Snapshot().Sync)
	}
	s.Close()
	if !items.stopped || !content.stopped {
		t.Fatalf("subscriptions not stopped: items=%v content=%v", items.stopped, content.stopped)
	}
	s.Close()
}

func TestSyncState_String(t *testing.T) {
	tests := map[SyncState]string{
		SyncLocalOnly:  "local",
		SyncConnecting: "connecting",
		SyncLive:       "live",
		SyncStale:      "stale",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
