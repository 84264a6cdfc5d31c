package state

import (
	"context"
	"fmt"

	"github.com/five82/storefront/internal/shop"
)

// Content returns the page content.
func (s *Store) Content() shop.PageContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetContent replaces the page content and saves it remotely. If the save
// fails the previous content is restored and the error returned.
func (s *Store) SetContent(ctx context.Context, pc shop.PageContent) error {
	if err := s.requireOwner(); err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.page
	s.page = pc
	s.persistContentLocked()
	s.mu.Unlock()
	s.notify()

	if s.content == nil {
		return nil
	}
	if err := s.content.Save(ctx, pc); err != nil {
		s.mu.Lock()
		// a newer value from a push or another save stays
		if s.page == pc {
			s.page = prev
			s.persistContentLocked()
		}
		s.mu.Unlock()
		s.remoteFailed("save page content", err)
		return fmt.Errorf("save page content: %w", err)
	}
	return nil
}

// applyContent handles a remote content value.
func (s *Store) applyContent(pc shop.PageContent) {
	s.mu.Lock()
	changed := s.page != pc
	if changed {
		s.page = pc
		s.persistContentLocked()
	}
	s.remoteOKLocked()
	s.mu.Unlock()
	s.notify()
}
