// Package readstate tracks which articles the user has opened or saved,
// persisted through the kv capability as two JSON arrays of article IDs.
// Every failure mode degrades to "empty set": a missing store, a failed
// read, or a corrupt payload never surfaces an error to callers, it just
// means nothing is read yet.
package readstate

import (
	"encoding/json"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/abelbrown/kiosk/internal/kv"
)

// Fixed storage keys. One key per set; each holds a JSON array of IDs.
const (
	readKey  = "read_items"
	savedKey = "saved_items"
)

// Tracker holds the read and saved sets and writes them through on every
// mutation. Mutations are read-modify-write over the full serialized set;
// fine at the few-thousand-ID scale this sees.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Tracker struct {
	mu    sync.Mutex
	store kv.Store // nil means session-only, writes stay in memory
	read  map[feed.ID]bool
	saved map[feed.ID]bool
}

// New loads both sets from the store. Pass nil for a session-only tracker.
func New(store kv.Store) *Tracker {
	t := &Tracker{store: store}
	t.read = t.load(readKey)
	t.saved = t.load(savedKey)
	return t
}

// load reads one set, treating every failure as an empty set.
func (t *Tracker) load(key string) map[feed.ID]bool {
	set := make(map[feed.ID]bool)
	if t.store == nil {
		return set
	}

	value, ok, err := t.store.Get(key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("read state unavailable, starting empty")
		return set
	}
	if !ok {
		return set
	}

	// feed.ID decodes strings and numbers alike, so payloads written by
	// earlier versions that stored numeric IDs still load.
	var ids []feed.ID
	if err := json.Unmarshal(value, &ids); err != nil {
		log.WithError(err).WithField("key", key).Warn("read state corrupt, starting empty")
		return set
	}
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// persist writes one set back. Failures are logged and absorbed; the
// in-memory set stays authoritative for the session.
func (t *Tracker) persist(key string, set map[feed.ID]bool) {
	if t.store == nil {
		return
	}

	ids := make([]feed.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	// Sorted for a deterministic payload.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	value, err := json.Marshal(ids)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("encode read state failed")
		return
	}
	if err := t.store.Set(key, value); err != nil {
		log.WithError(err).WithField("key", key).Warn("persist read state failed")
	}
}

// IsRead reports whether the article has been opened.
func (t *Tracker) IsRead(id feed.ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read[id]
}

// MarkRead adds the article to the read set. Marking an already-read
// article again is a no-op; articles without an ID are ignored.
func (t *Tracker) MarkRead(id feed.ID) {
	if id == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.read[id] {
		return
	}
	t.read[id] = true
	t.persist(readKey, t.read)
}

// MarkUnread removes the article from the read set. Unmarking a
// never-read article is a no-op.
func (t *Tracker) MarkUnread(id feed.ID) {
	if id == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.read[id] {
		return
	}
	delete(t.read, id)
	t.persist(readKey, t.read)
}

// IsSaved reports whether the article is on the saved shelf.
func (t *Tracker) IsSaved(id feed.ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saved[id]
}

// ToggleSaved flips the saved flag and returns the new state.
func (t *Tracker) ToggleSaved(id feed.ID) bool {
	if id == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.saved[id] {
		delete(t.saved, id)
	} else {
		t.saved[id] = true
	}
	t.persist(savedKey, t.saved)
	return t.saved[id]
}

// ReadCount returns the size of the read set.
func (t *Tracker) ReadCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.read)
}

// SavedCount returns the size of the saved set.
func (t *Tracker) SavedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.saved)
}

// Clear wipes both sets, in memory and in the store.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.read = make(map[feed.ID]bool)
	t.saved = make(map[feed.ID]bool)

	if t.store == nil {
		return
	}
	for _, key := range []string{readKey, savedKey} {
		if err := t.store.Delete(key); err != nil {
			log.WithError(err).WithField("key", key).Warn("clear read state failed")
		}
	}
}
