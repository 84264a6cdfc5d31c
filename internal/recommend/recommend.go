// Package recommend asks a generative model to pick catalog items matching a
// free-text request.
//
// The model only sees titles, authors and categories, and may only answer
// with titles from that list. Answers are matched back onto the catalog by
// title; anything that does not match is dropped.
//
// The API credential is held in memory by a CredentialHolder. A credential
// rejected by the service is discarded so the UI can prompt for a new one.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/five82/storefront/internal/shop"
)

const maxSuggestions = 3

var (
	// ErrInvalidCredential means the service rejected the API key.
	ErrInvalidCredential = errors.New("invalid api credential")
	// ErrUnavailable covers every other failure, including a missing key.
	ErrUnavailable = errors.New("recommendations unavailable")
)

// Generator sends a prompt and returns the raw JSON answer.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// CredentialHolder keeps the API key for the lifetime of the process.
type CredentialHolder struct {
	mu  sync.RWMutex
	key string
}

// NewCredentialHolder seeds the holder, typically from the environment.
func NewCredentialHolder(initial string) *CredentialHolder {
	return &CredentialHolder{key: strings.TrimSpace(initial)}
}

// Get returns the key and whether one is set.
func (h *CredentialHolder) Get() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key, h.key != ""
}

// Set replaces the key.
func (h *CredentialHolder) Set(key string) {
	h.mu.Lock()
	h.key = strings.TrimSpace(key)
	h.mu.Unlock()
}

// Invalidate forgets the key.
func (h *CredentialHolder) Invalidate() { h.Set("") }

// Service produces recommendations.
type Service struct {
	gen    Generator
	creds  *CredentialHolder
	logger *slog.Logger
}

// NewService wires a generator to a credential holder.
func NewService(gen Generator, creds *CredentialHolder, logger *slog.Logger) *Service {
	if creds == nil {
		creds = NewCredentialHolder("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, creds: creds, logger: logger}
}

// Credentials exposes the holder so the UI can prompt for a key.
func (s *Service) Credentials() *CredentialHolder { return s.creds }

// Recommend returns up to three catalog items for query.
func (s *Service) Recommend(ctx context.Context, query string, catalog []shop.Item) ([]shop.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(catalog) == 0 {
		return nil, nil
	}
	if s == nil || s.gen == nil {
		return nil, ErrUnavailable
	}
	key, ok := s.creds.Get()
	if !ok {
		return nil, fmt.Errorf("no api key configured: %w", ErrUnavailable)
	}

	raw, err := s.gen.Generate(ctx, key, BuildPrompt(query, catalog))
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			s.creds.Invalidate()
			s.logger.Warn("recommendation credential rejected")
			return nil, err
		}
		s.logger.Warn("recommendation request failed", "error", err)
		return nil, fmt.Errorf("generate recommendations: %w", ErrUnavailable)
	}

	titles, err := parseTitles(raw)
	if err != nil {
		s.logger.Warn("recommendation answer malformed", "error", err)
		return nil, fmt.Errorf("parse recommendations: %w", ErrUnavailable)
	}
	return MatchTitles(titles, catalog), nil
}

// BuildPrompt renders the bookseller prompt for query over catalog.
func BuildPrompt(query string, catalog []shop.Item) string {
	var list strings.Builder
	for _, it := range catalog {
		fmt.Fprintf(&list, "- %q by %s (Genre: %s)\n", it.Title, it.Author, it.Category)
	}
	return fmt.Sprintf(`You are an expert bookseller at a bookstore called %q.
A customer is looking for a book. Their request is: %q.

Here is a list of available books in our inventory:
%s
Based on the customer's request, please recommend up to %d books from the list.
Only recommend books that are on the list.
If no books from the list match the request, return an empty array.`,
		shop.StoreName, query, list.String(), maxSuggestions)
}

type suggestion struct {
	Title string `json:"title"`
}

func parseTitles(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var suggestions []suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	titles := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if t := strings.TrimSpace(s.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

// MatchTitles maps titles onto catalog items, case-insensitively, keeping the
// model's order, skipping unknowns and duplicates, and capping the result.
func MatchTitles(titles []string, catalog []shop.Item) []shop.Item {
	byTitle := make(map[string]shop.Item, len(catalog))
	for _, it := range catalog {
		key := strings.ToLower(strings.TrimSpace(it.Title))
		if _, exists := byTitle[key]; !exists {
			byTitle[key] = it
		}
	}
	var out []shop.Item
	seen := make(map[shop.ID]bool)
	for _, title := range titles {
		it, ok := byTitle[strings.ToLower(strings.TrimSpace(title))]
		if !ok || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
