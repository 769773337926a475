package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("keyword"); got != "อัมพวา" {
			t.Errorf("keyword = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": [
			{"place_id": "P123", "place_name": "ตลาดน้ำอัมพวา", "province": "สมุทรสงคราม", "popularity": 95},
			{"name": "วัดบางกุ้ง", "province": "สมุทรสงคราม"},
			{"province": "no name at all"}
		]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", time.Second, nil)
	entries, err := c.Lookup(context.Background(), "อัมพวา", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2 (unmappable record skipped)", len(entries))
	}
	if entries[0].ID != "P123" || entries[0].Name != "ตลาดน้ำอัมพวา" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].ID == "" {
		t.Error("record without an ID must get one assigned")
	}
}

func TestLookup_EnvelopeVariants(t *testing.T) {
	bodies := []string{
		`[{"name": "Bangkok"}]`,
		`{"data": [{"name": "Bangkok"}]}`,
		`{"places": [{"place_name": "Bangkok"}]}`,
	}
	for _, body := range bodies {
		body := body
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := NewHTTPClient(srv.URL, "", time.Second, nil)
		entries, err := c.Lookup(context.Background(), "bangkok", 0)
		srv.Close()
		if err != nil {
			t.Errorf("body %s: %v", body, err)
			continue
		}
		if len(entries) != 1 || entries[0].Name != "Bangkok" {
			t.Errorf("body %s: entries = %+v", body, entries)
		}
	}
}

func TestLookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second, nil)
	if _, err := c.Lookup(context.Background(), "x", 0); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestLookup_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c := NewHTTPClient(srv.URL, "", time.Second, nil)
	if _, err := c.Lookup(ctx, "x", 0); err == nil {
		t.Error("expected error when context deadline passes")
	}
}
