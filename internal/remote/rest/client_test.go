package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL(blank) returned nil error")
	}

	u, err := parseBaseURL("docs.internal:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "docs.internal:8080" {
		t.Fatalf("url = %q, want http://docs.internal:8080", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

type recorded struct {
	method string
	path   string
	body   string
}

func TestClient_CatalogAndContentEndpoints(t *testing.T) {
	t.Parallel()

	var (
		mu        sync.Mutex
		calls     []recorded
		userAgent string
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.EscapedPath(), body: string(body)})
		userAgent = r.Header.Get("User-Agent")
		requestID = r.Header.Get("X-Request-ID")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/items":
			_, _ = w.Write([]byte(`{"items":[{"id":2,"title":"Zebra","price":3},{"id":"b","title":"Apple","price":-1}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/items":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "new-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/content":
			_ = json.NewEncoder(w).Encode(shop.PageContent{HeroTitle: "Hello"})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Apple" || items[1].ID != "2" {
		t.Fatalf("FetchAll = %#v, want Apple then Zebra with id 2", items)
	}
	if items[0].Price != 0 {
		t.Fatalf("negative price not sanitized: %v", items[0].Price)
	}

	id, err := c.Create(ctx, shop.ItemInput{Title: "New", Price: 4.5})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != "new-1" {
		t.Fatalf("Create id = %q, want new-1", id)
	}
	if err := c.Update(ctx, shop.Item{ID: "a b", Title: "X"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := c.Delete(ctx, "a b"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := c.Seed(ctx, shop.Item{ID: "1", Title: "Seeded"}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	content, err := c.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if content.HeroTitle != "Hello" {
		t.Fatalf("Fetch = %#v, want hero Hello", content)
	}
	if err := c.Save(ctx, shop.PageContent{HeroTitle: "Bye"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []struct{ method, path string }{
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/items"},
		{http.MethodPatch, "/api/items/a%20b"},
		{http.MethodDelete, "/api/items/a%20b"},
		{http.MethodPut, "/api/items/1"},
		{http.MethodGet, "/api/content"},
		{http.MethodPut, "/api/content"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %#v, want %d calls", calls, len(want))
	}
	for i, w := range want {
		if calls[i].method != w.method || calls[i].path != w.path {
			t.Fatalf("call %d = %s %s, want %s %s", i, calls[i].method, calls[i].path, w.method, w.path)
		}
	}
	if !strings.Contains(calls[1].body, `"title":"New"`) || strings.Contains(calls[1].body, `"id"`) {
		t.Fatalf("create body = %s, want title without id", calls[1].body)
	}
	if !strings.Contains(calls[6].body, `"heroTitle":"Bye"`) {
		t.Fatalf("save body = %s, want heroTitle Bye", calls[6].body)
	}
	if !strings.HasPrefix(userAgent, "storefront/") {
		t.Fatalf("User-Agent = %q, want storefront/*", userAgent)
	}
	if requestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_HTTPErrorsAndNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/content":
			http.NotFound(w, r)
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchAll error = %v, want decode response error", err)
	}
	_, err = c.Fetch(context.Background())
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Fetch error = %v, want ErrNotFound", err)
	}
	err = c.Update(context.Background(), shop.Item{ID: "x"})
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Update error = %v, want status 500 error", err)
	}
}

func TestClient_CreateRejectsEmptyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":""}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Create(context.Background(), shop.ItemInput{Title: "x"}); err == nil {
		t.Fatalf("Create returned nil error for empty id")
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatalf("nil FetchAll returned nil error")
	}
	if err := c.Save(context.Background(), shop.PageContent{}); err == nil {
		t.Fatalf("nil Save returned nil error")
	}
}
