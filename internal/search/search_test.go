package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"

	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

const braveResponse = `{
  "web": {
    "results": [
      {"title": "Go memory model", "url": "https://go.dev/ref/mem", "description": "The Go memory model."},
      {"title": "Effective Go", "url": "https://go.dev/doc/effective_go", "description": "Tips for writing Go."},
      {"title": "Go blog", "url": "https://go.dev/blog", "description": "The Go project blog."}
    ]
  }
}`

func TestDisabledSearcherReturnsNothing(t *testing.T) {
	results, err := Disabled{}.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}

func TestBraveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "secret" {
			t.Errorf("missing subscription token header")
		}
		if got := r.URL.Query().Get("q"); got != "go generics" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(braveResponse))
	}))
	defer srv.Close()

	c := NewBraveClient(srv.URL, "secret", logging.New(logr.Discard()))
	results, err := c.Search(context.Background(), "go generics", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected count to cap results at 2, got %d", len(results))
	}
	if results[0].Title != "Go memory model" || results[0].URL != "https://go.dev/ref/mem" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[0].Snippet == "" {
		t.Fatal("expected snippet to be populated")
	}
}

func TestBraveSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewBraveClient(srv.URL, "bad", logging.New(logr.Discard()))
	if _, err := c.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
