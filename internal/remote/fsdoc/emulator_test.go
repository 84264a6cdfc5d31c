package fsdoc

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

// newEmulatorClient connects to the Firestore emulator named by
// FIRESTORE_EMULATOR_HOST, using a collection and document unique to the test.
func newEmulatorClient(t *testing.T) *Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	fs, err := firestore.NewClient(ctx, "storefront-test")
	if err != nil {
		t.Fatalf("firestore.NewClient returned error: %v", err)
	}
	suffix := uuid.NewString()
	c := newClient(fs, Config{
		ItemsCollection: "books-" + suffix,
		ContentDocument: "pageContent/" + suffix,
	}, nil)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func nextItems(t *testing.T, ch <-chan []shop.Item, want func([]shop.Item) bool) []shop.Item {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case items := <-ch:
			if want(items) {
				return items
			}
		case <-deadline:
			t.Fatalf("timed out waiting for items snapshot")
			return nil
		}
	}
}

func TestEmulator_ItemsListenerFollowsWrites(t *testing.T) {
	c := newEmulatorClient(t)
	items := c.Items()
	ctx := context.Background()

	snapshots := make(chan []shop.Item, 16)
	unsubscribe := items.Subscribe(ctx, func(got []shop.Item) { snapshots <- got },
		func(err error) { t.Errorf("listener error: %v", err) })
	defer unsubscribe()

	nextItems(t, snapshots, func(got []shop.Item) bool { return len(got) == 0 })

	if err := items.Seed(ctx, shop.Item{ID: "1", Title: "Zeta", Price: 3}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	id, err := items.Create(ctx, shop.ItemInput{Title: "Alpha", Price: 5})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got := nextItems(t, snapshots, func(got []shop.Item) bool { return len(got) == 2 })
	if got[0].ID != id || got[1].ID != "1" {
		t.Fatalf("snapshot = %v, want [%s 1] ordered by title", got, id)
	}

	if err := items.Update(ctx, shop.Item{ID: "1", Title: "Beta", Price: 4}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	nextItems(t, snapshots, func(got []shop.Item) bool {
		return len(got) == 2 && got[1].Title == "Beta"
	})

	if err := items.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	nextItems(t, snapshots, func(got []shop.Item) bool { return len(got) == 1 })

	unsubscribe()
	unsubscribe()
}

func TestEmulator_UpdateMissingItemIsNotFound(t *testing.T) {
	c := newEmulatorClient(t)
	err := c.Items().Update(context.Background(), shop.Item{ID: "missing", Title: "Ghost"})
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Update error = %v, want remote.ErrNotFound", err)
	}
}

func TestEmulator_ContentFetchAndListener(t *testing.T) {
	c := newEmulatorClient(t)
	content := c.Content()
	ctx := context.Background()

	if _, err := content.Fetch(ctx); !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Fetch error = %v, want remote.ErrNotFound", err)
	}

	values := make(chan shop.PageContent, 8)
	unsubscribe := content.Subscribe(ctx, func(pc shop.PageContent) { values <- pc },
		func(err error) { t.Errorf("listener error: %v", err) })
	defer unsubscribe()

	want := shop.PageContent{HeroTitle: "Pop up", About: "Books"}
	if err := content.Save(ctx, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	select {
	case got := <-values:
		if got != want {
			t.Fatalf("content = %#v, want %#v", got, want)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for content snapshot")
	}

	got, err := content.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Fetch = %#v, want %#v", got, want)
	}
}
