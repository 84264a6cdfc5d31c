package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/five82/storefront/internal/shop"
)

type fakeGenerator struct {
	answer  string
	err     error
	gotKey  string
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, apiKey, prompt string) (string, error) {
	f.gotKey = apiKey
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func TestBuildPrompt_ListsCatalog(t *testing.T) {
	catalog := []shop.Item{{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"}}
	got := BuildPrompt("space politics", catalog)
	for _, want := range []string{
		`- "Dune" by Frank Herbert (Genre: Science Fiction)`,
		`"space politics"`,
		"up to 3 books",
		"Only recommend books that are on the list.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestMatchTitles(t *testing.T) {
	catalog := shop.DefaultCatalog()
	titles := []string{
		strings.ToUpper(catalog[2].Title),
		"Not In The Store",
		catalog[0].Title,
		catalog[0].Title,
		catalog[1].Title,
		catalog[3].Title,
	}
	got := MatchTitles(titles, catalog)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantIDs := []shop.ID{catalog[2].ID, catalog[0].ID, catalog[1].ID}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("got[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestRecommend_MatchesAnswer(t *testing.T) {
	catalog := shop.DefaultCatalog()
	gen := &fakeGenerator{answer: `[{"title":"` + catalog[4].Title + `"},{"title":"Unknown"}]`}
	svc := NewService(gen, NewCredentialHolder(" key-1 "), nil)

	got, err := svc.Recommend(context.Background(), "something", catalog)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != catalog[4].ID {
		t.Fatalf("got = %#v, want only %q", got, catalog[4].ID)
	}
	if gen.gotKey != "key-1" {
		t.Fatalf("key = %q, want key-1", gen.gotKey)
	}
}

func TestRecommend_EmptyQueryOrAnswer(t *testing.T) {
	gen := &fakeGenerator{answer: "  "}
	svc := NewService(gen, NewCredentialHolder("k"), nil)

	got, err := svc.Recommend(context.Background(), "   ", shop.DefaultCatalog())
	if err != nil || got != nil || len(gen.prompts) != 0 {
		t.Fatalf("blank query = %v, %v, prompts %d; want no call", got, err, len(gen.prompts))
	}
	got, err = svc.Recommend(context.Background(), "x", shop.DefaultCatalog())
	if err != nil || len(got) != 0 {
		t.Fatalf("blank answer = %v, %v; want empty", got, err)
	}
}

func TestRecommend_MissingKey(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen, nil, nil)
	_, err := svc.Recommend(context.Background(), "x", shop.DefaultCatalog())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator called without key")
	}
}

func TestRecommend_InvalidCredentialIsDiscarded(t *testing.T) {
	gen := &fakeGenerator{err: ErrInvalidCredential}
	creds := NewCredentialHolder("bad")
	svc := NewService(gen, creds, nil)

	_, err := svc.Recommend(context.Background(), "x", shop.DefaultCatalog())
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
	if _, ok := creds.Get(); ok {
		t.Fatalf("credential still set after rejection")
	}
}

func TestRecommend_FailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport", &fakeGenerator{err: errors.New("dial tcp: refused")}},
		{"malformed", &fakeGenerator{answer: "{not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := NewCredentialHolder("k")
			svc := NewService(tt.gen, creds, nil)
			_, err := svc.Recommend(context.Background(), "x", shop.DefaultCatalog())
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
			if _, ok := creds.Get(); !ok {
				t.Fatalf("credential dropped on a non-credential failure")
			}
		})
	}
}

func TestNewGeminiDefaultModel(t *testing.T) {
	if got := NewGemini("  ").model; got != DefaultModel {
		t.Fatalf("model = %q, want %q", got, DefaultModel)
	}
}
