package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/shop"
)

func TestAddCollection_NormalizesAndIssuesTimeIDs(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	if _, err := s.AddCollection("x", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	loginOwner(t, s)

	first, err := s.AddCollection("  Staff Picks ", []shop.ID{shop.NormalizeID(3), "3", " 5 ", ""})
	if err != nil {
		t.Fatalf("AddCollection returned error: %v", err)
	}
	if first.Name != "Staff Picks" {
		t.Fatalf("Name = %q, want trimmed", first.Name)
	}
	if !reflect.DeepEqual(first.ItemIDs, []shop.ID{"3", "5"}) {
		t.Fatalf("ItemIDs = %v, want [3 5]", first.ItemIDs)
	}
	wantID := shop.NormalizeID(fixedNow.UnixMilli())
	if first.ID != wantID {
		t.Fatalf("ID = %q, want %q", first.ID, wantID)
	}

	// same clock reading must still yield a fresh id
	second, _ := s.AddCollection("Again", nil)
	if second.ID == first.ID {
		t.Fatalf("collection ids collided: %q", second.ID)
	}
	if got := len(s.Collections()); got != len(shop.DefaultCollections())+2 {
		t.Fatalf("collections = %d, want %d", got, len(shop.DefaultCollections())+2)
	}
}

func TestUpdateAndDeleteCollection(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	loginOwner(t, s)

	c := s.Collections()[0]
	c.Name = "Renamed"
	c.ItemIDs = []shop.ID{"4"}
	if err := s.UpdateCollection(c); err != nil {
		t.Fatalf("UpdateCollection returned error: %v", err)
	}
	if got := s.Collections()[0]; got.Name != "Renamed" || !reflect.DeepEqual(got.ItemIDs, []shop.ID{"4"}) {
		t.Fatalf("collection = %#v, want renamed with [4]", got)
	}

	if err := s.UpdateCollection(shop.Collection{ID: "nope"}); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
	if err := s.DeleteCollection("nope"); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
	if err := s.DeleteCollection(c.ID); err != nil {
		t.Fatalf("DeleteCollection returned error: %v", err)
	}
	for _, got := range s.Collections() {
		if got.ID == c.ID {
			t.Fatalf("collection %q still present", c.ID)
		}
	}
}

func TestResolveCollection_SkipsUnknownIDs(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	got := s.ResolveCollection(shop.Collection{ItemIDs: []shop.ID{"2", "missing", "1"}})
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("resolved = %v, want items 2 and 1", titles(got))
	}
}

func TestCollections_RoundTripThroughLocalStore(t *testing.T) {
	backend := localstore.NewMemory()
	s := New(Options{
		Local: localstore.New(backend, nil),
		Now:   func() time.Time { return fixedNow },
	})
	if err := s.Init(t.Context()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	loginOwner(t, s)
	if _, err := s.AddCollection("Kept", []shop.ID{"1"}); err != nil {
		t.Fatalf("AddCollection returned error: %v", err)
	}

	reloaded := newTestStore(t, backend, nil, nil)
	if !reflect.DeepEqual(reloaded.Collections(), s.Collections()) {
		t.Fatalf("collections = %#v, want %#v", reloaded.Collections(), s.Collections())
	}
}
