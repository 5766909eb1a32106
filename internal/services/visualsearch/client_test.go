package visualsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/internal/models"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.SerpApiConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, zap.NewNop())
}

func lensPayload(count int) map[string]any {
	matches := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		matches = append(matches, map[string]any{
			"title":     fmt.Sprintf("m%d", i),
			"source":    "Shop",
			"link":      fmt.Sprintf("https://shop.example/%d", i),
			"thumbnail": fmt.Sprintf("https://img.example/t%d.jpg", i),
		})
	}
	return map[string]any{"visual_matches": matches}
}

func TestSearch_TruncatesToThirty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("engine"); got != "google_lens" {
			t.Errorf("unexpected engine param: %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("unexpected api_key param: %q", got)
		}
		json.NewEncoder(w).Encode(lensPayload(35))
	}))
	defer srv.Close()

	results, demo := newTestClient(srv.URL).Search(context.Background(), "https://img.example/x.png")
	if demo {
		t.Fatalf("expected real results, got demo")
	}
	if len(results) != 30 {
		t.Fatalf("expected 30 results, got %d", len(results))
	}
	if results[0].Title != "m0" || results[29].Title != "m29" {
		t.Fatalf("unexpected truncation order: first=%q last=%q", results[0].Title, results[29].Title)
	}
}

func TestSearch_EmptyMatchesServesDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"visual_matches": []any{}})
	}))
	defer srv.Close()

	results, demo := newTestClient(srv.URL).Search(context.Background(), "https://img.example/x.png")
	if !demo {
		t.Fatalf("expected demo fallback")
	}
	assertDemoSet(t, results)
}

func TestSearch_MissingMatchesKeyServesDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"search_metadata": map[string]any{}})
	}))
	defer srv.Close()

	results, demo := newTestClient(srv.URL).Search(context.Background(), "https://img.example/x.png")
	if !demo {
		t.Fatalf("expected demo fallback")
	}
	assertDemoSet(t, results)
}

func TestSearch_UpstreamErrorServesDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	results, demo := newTestClient(srv.URL).Search(context.Background(), "https://img.example/x.png")
	if !demo {
		t.Fatalf("expected demo fallback")
	}
	assertDemoSet(t, results)
}

func TestSearch_MalformedBodyServesDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	results, demo := newTestClient(srv.URL).Search(context.Background(), "https://img.example/x.png")
	if !demo {
		t.Fatalf("expected demo fallback")
	}
	assertDemoSet(t, results)
}

func TestSearch_UnreachableProviderServesDemo(t *testing.T) {
	results, demo := newTestClient("http://127.0.0.1:1").Search(context.Background(), "https://img.example/x.png")
	if !demo {
		t.Fatalf("expected demo fallback")
	}
	assertDemoSet(t, results)
}

func assertDemoSet(t *testing.T, results []models.MatchResult) {
	t.Helper()
	if len(results) != 2 {
		t.Fatalf("expected 2 demo results, got %d", len(results))
	}
	if results[0].Title != "Facebook Guru Profile" || results[1].Title != "Twitter Guru Post" {
		t.Fatalf("unexpected demo titles: %q, %q", results[0].Title, results[1].Title)
	}
}
