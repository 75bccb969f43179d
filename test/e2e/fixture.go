// Package e2e exercises the full stack below the terminal: a served feed
// document through the fetch loader, the sqlite-backed read tracker, and
// the view model, with no mocks in between.
package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abelbrown/kiosk/internal/fetch"
	"github.com/abelbrown/kiosk/internal/kv"
	"github.com/abelbrown/kiosk/internal/readstate"
	"github.com/abelbrown/kiosk/internal/view"
)

// fixtureNow anchors the clock so the temporal filters are deterministic
// regardless of when or where the tests run.
var fixtureNow = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixtureNow }

// fixtureFeed covers the decode edge cases end to end: a numeric id, a
// missing published_at with a processed_at fallback, mixed source types,
// shared sources, and articles on both sides of the today/week windows.
const fixtureFeed = `{
  "items": [
    {
      "id": "k1", "title": "Release day roundup",
      "summary": "The release lands with plenty to read.",
      "source_type": "rss", "source_id": "go-blog", "source_name": "Go Blog",
      "published_at": "2025-03-05T09:00:00Z",
      "url": "https://example.com/k1", "rating": 80, "labels": ["Go", "Releases"]
    },
    {
      "id": "k2", "title": "Conference keynote recording",
      "source_type": "youtube", "source_id": "conf", "source_name": "ConfTalks",
      "published_at": "2025-03-03T10:00:00Z",
      "url": "https://example.com/k2"
    },
    {
      "id": "k3", "title": "The weekly wrap",
      "summary": "Everything that happened.",
      "source_type": "newsletter", "source_id": "wk", "source_name": "Weekly Wrap",
      "published_at": "2025-02-10T08:00:00Z",
      "url": "https://example.com/k3", "rating": 95, "labels": ["Go"]
    },
    {
      "id": 7, "title": "Morning links",
      "source_type": "rss", "source_id": "go-blog", "source_name": "Go Blog",
      "published_at": "2025-03-05T07:00:00Z",
      "url": "https://example.com/k4", "labels": ["News"]
    },
    {
      "id": "k5", "title": "Thread of the day",
      "source_type": "nitter", "source_id": "dev", "source_name": "Dev Posts",
      "processed_at": "2025-03-04T12:00:00Z",
      "url": "https://example.com/k5"
    }
  ],
  "generated_at": "2025-03-05T11:00:00Z",
  "total_items": 5
}`

// feedServer serves the fixture document, returning 502 while failing is
// set. The flag lets reload tests flip the backend down mid-session.
func feedServer(t *testing.T) (*httptest.Server, *atomic.Bool) {
	t.Helper()
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "backend down", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixtureFeed)
	}))
	t.Cleanup(srv.Close)
	return srv, &failing
}

// emptyServer serves a document with no items key at all.
func emptyServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"generated_at": "2025-03-05T11:00:00Z"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// session is one loaded kiosk run: real loader, real sqlite store, real
// view model.
type session struct {
	vm    *view.Model
	store kv.Store
}

// startSession opens the store at dbPath, performs the initial load from
// url, and returns the ready session.
func startSession(t *testing.T, url, dbPath string) *session {
	t.Helper()

	st, err := kv.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	loader := fetch.NewLoader(url, 5*time.Second)
	vm := view.New(loader, readstate.New(st), fixedClock)

	if !vm.BeginLoad() {
		t.Fatal("initial load refused")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	doc, err := loader.Load(ctx)
	vm.ApplyLoad(doc, err)

	return &session{vm: vm, store: st}
}

// reload performs an explicit refetch through a fresh loader, sidestepping
// the per-loader throttle so tests do not have to wait it out.
func reload(t *testing.T, s *session, url string) {
	t.Helper()
	if !s.vm.BeginLoad() {
		t.Fatal("reload refused")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	doc, err := fetch.NewLoader(url, 5*time.Second).Load(ctx)
	s.vm.ApplyLoad(doc, err)
}

// dbFile returns a database path inside the test's temp dir.
func dbFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "kiosk.db")
}
