package state

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

func TestSetContent_RequiresOwner(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)
	err := s.SetContent(context.Background(), shop.PageContent{HeroTitle: "x"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if s.Content() != shop.DefaultContent() {
		t.Fatalf("content changed without owner")
	}
}

func TestSetContent_LocalOnly(t *testing.T) {
	backend := localstore.NewMemory()
	s := newTestStore(t, backend, nil, nil)
	loginOwner(t, s)

	want := shop.PageContent{HeroTitle: "New", About: "About us", LogoImage: "data:image/png;base64,AAAA"}
	if err := s.SetContent(context.Background(), want); err != nil {
		t.Fatalf("SetContent returned error: %v", err)
	}
	if got := s.Content(); got != want {
		t.Fatalf("content = %#v, want %#v", got, want)
	}
	if got := newTestStore(t, backend, nil, nil).Content(); got != want {
		t.Fatalf("reloaded content = %#v, want %#v", got, want)
	}
}

func TestSetContent_RemoteSave(t *testing.T) {
	content := &fakeContent{fetchErr: remote.ErrNotFound}
	s := newTestStore(t, nil, nil, content)
	loginOwner(t, s)

	want := shop.PageContent{HeroTitle: "Saved"}
	if err := s.SetContent(context.Background(), want); err != nil {
		t.Fatalf("SetContent returned error: %v", err)
	}
	if len(content.saved) != 1 || content.saved[0] != want {
		t.Fatalf("saved = %#v, want one save of %#v", content.saved, want)
	}
}

func TestSetContent_RemoteFailureRollsBack(t *testing.T) {
	backend := localstore.NewMemory()
	content := &fakeContent{fetchErr: remote.ErrNotFound, saveErr: errors.New("quota exceeded")}
	s := newTestStore(t, backend, nil, content)
	loginOwner(t, s)
	before := s.Content()

	var seen []shop.PageContent
	cancel := s.Subscribe(func(snap Snapshot) { seen = append(seen, snap.Content) })
	defer cancel()

	err := s.SetContent(context.Background(), shop.PageContent{HeroTitle: "Doomed"})
	if err == nil {
		t.Fatalf("SetContent returned nil error")
	}
	if got := s.Content(); got != before {
		t.Fatalf("content = %#v, want rollback to %#v", got, before)
	}
	if len(seen) < 2 || seen[0].HeroTitle != "Doomed" || seen[len(seen)-1] != before {
		t.Fatalf("observers saw %#v, want optimistic value then rollback", seen)
	}

	var persisted shop.PageContent
	if !localstore.New(backend, nil).Get(localstore.KeyContent, &persisted) || persisted != before {
		t.Fatalf("persisted = %#v, want rollback persisted", persisted)
	}
}

func TestInit_FetchesRemoteContent(t *testing.T) {
	remoteValue := shop.PageContent{HeroTitle: "From remote"}
	content := &fakeContent{value: remoteValue}
	s := newTestStore(t, nil, nil, content)
	if got := s.Content(); got != remoteValue {
		t.Fatalf("content = %#v, want %#v", got, remoteValue)
	}
}

func TestInit_ContentFetchFailureKeepsLocal(t *testing.T) {
	content := &fakeContent{fetchErr: errors.New("offline")}
	s := newTestStore(t, nil, nil, content)
	if got := s.Content(); got != shop.DefaultContent() {
		t.Fatalf("content = %#v, want defaults", got)
	}
	if s.Snapshot().LastError == nil {
		t.Fatalf("fetch failure not recorded")
	}
}

func TestContentPush_ReplacesWhenDifferent(t *testing.T) {
	content := &fakeContent{fetchErr: remote.ErrNotFound}
	s := newTestStore(t, nil, nil, content)

	notified := 0
	cancel := s.Subscribe(func(Snapshot) { notified++ })
	defer cancel()

	pushed := shop.PageContent{HeroTitle: "Pushed", HeroSubtitle: "sub"}
	content.push(pushed)
	if got := s.Content(); got != pushed {
		t.Fatalf("content = %#v, want %#v", got, pushed)
	}
	if notified == 0 {
		t.Fatalf("observers not notified of push")
	}
}
