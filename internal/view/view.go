// Package view implements the feed view-model. The Model owns the loaded
// article set, the current selection, the derived indices, and the read
// tracker, and recomputes the visible article list in full after every
// mutation; there is no incremental diffing. It knows nothing about
// terminals: collaborators are injected, and the presentation layer just
// calls mutations and renders the accessors.
package view

import (
	"context"
	"time"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/index"
	"github.com/abelbrown/kiosk/internal/readstate"
)

// State is the load lifecycle. One automatic idle-to-loading transition
// at startup; ready is terminal except for explicit reloads.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Clock supplies "now" for temporal filters. Injectable for tests.
type Clock func() time.Time

// Loader is the fetch capability the model suspends on.
type Loader interface {
	Load(ctx context.Context) (*feed.Document, error)
}

// Model is the feed view-model.
// Not safe for concurrent mutation; drive it from one goroutine (the
// Bubble Tea update loop, or a CLI command) and run only the fetch itself
// concurrently, completing it via ApplyLoad.
type Model struct {
	loader  Loader
	tracker *readstate.Tracker
	clock   Clock

	state     State
	loadErr   error // fatal: set when the session has no data at all
	reloadErr error // dismissible: a reload failed, previous data kept

	articles    []feed.Article // load order, immutable for the session
	generatedAt time.Time
	sel         filter.Selection
	idx         *index.Index
	visible     []feed.Article
}

// New creates a view-model with its collaborators. tracker may be nil for
// a session with no persistence at all; clock defaults to time.Now.
func New(loader Loader, tracker *readstate.Tracker, clock Clock) *Model {
	if clock == nil {
		clock = time.Now
	}
	return &Model{
		loader:  loader,
		tracker: tracker,
		clock:   clock,
		state:   StateIdle,
		sel:     filter.NewSelection(),
		idx:     index.Build(nil),
		visible: []feed.Article{},
	}
}

// Loader returns the injected fetch capability, for the goroutine that
// performs the actual fetch.
func (m *Model) Loader() Loader {
	return m.loader
}

// BeginLoad transitions into loading. Returns false when a load is
// already in flight, so a second trigger cannot double-fetch.
func (m *Model) BeginLoad() bool {
	if m.state == StateLoading {
		return false
	}
	m.state = StateLoading
	return true
}

// ApplyLoad completes a pending load with the fetch outcome.
// Success replaces the article set, rebuilds both indices, and recomputes
// the visible list. Failure on the initial load is fatal for the session
// (error state, no partial data); failure on a reload keeps the previous
// articles and records a dismissible reload error instead.
func (m *Model) ApplyLoad(doc *feed.Document, err error) {
	if err != nil {
		if len(m.articles) > 0 {
			m.state = StateReady
			m.reloadErr = err
			return
		}
		m.state = StateError
		m.loadErr = err
		m.visible = []feed.Article{}
		return
	}

	m.articles = doc.Items
	m.generatedAt = doc.GeneratedAt
	m.idx = index.Build(m.articles)
	m.state = StateReady
	m.loadErr = nil
	m.reloadErr = nil
	m.recompute()
}

// DismissReloadError clears the dismissible reload error.
func (m *Model) DismissReloadError() {
	m.reloadErr = nil
}

// recompute runs the full filter and sort pipeline over the complete set.
func (m *Model) recompute() {
	subset := filter.Apply(m.articles, m.sel, m.clock(), m.isRead, m.isSaved)
	m.visible = filter.Sorted(subset, m.sel.Sort)
}

func (m *Model) isRead(id feed.ID) bool {
	return m.tracker != nil && m.tracker.IsRead(id)
}

func (m *Model) isSaved(id feed.ID) bool {
	return m.tracker != nil && m.tracker.IsSaved(id)
}

// SetMode selects a primary filter mode.
func (m *Model) SetMode(mode filter.Mode) {
	m.sel.SetMode(mode)
	m.recompute()
}

// SetSource narrows the view to one feed.
func (m *Model) SetSource(ref filter.SourceRef) {
	m.sel.SetSource(ref)
	m.recompute()
}

// SetCategory narrows the view to one label.
func (m *Model) SetCategory(label string) {
	m.sel.SetCategory(label)
	m.recompute()
}

// SetSearch replaces the search query.
func (m *Model) SetSearch(query string) {
	m.sel.SetSearch(query)
	m.recompute()
}

// SetSort replaces the sort order.
func (m *Model) SetSort(mode filter.Sort) {
	m.sel.SetSort(mode)
	m.recompute()
}

// ToggleUnreadOnly flips the unread-only restriction.
func (m *Model) ToggleUnreadOnly() {
	m.sel.ToggleUnreadOnly()
	m.recompute()
}

// MarkRead records that the article was opened.
func (m *Model) MarkRead(id feed.ID) {
	if m.tracker != nil {
		m.tracker.MarkRead(id)
	}
	m.recompute()
}

// MarkUnread puts the article back on the unread pile.
func (m *Model) MarkUnread(id feed.ID) {
	if m.tracker != nil {
		m.tracker.MarkUnread(id)
	}
	m.recompute()
}

// ToggleSaved flips the saved flag and returns the new state.
func (m *Model) ToggleSaved(id feed.ID) bool {
	saved := false
	if m.tracker != nil {
		saved = m.tracker.ToggleSaved(id)
	}
	m.recompute()
	return saved
}

// State returns the load lifecycle state.
func (m *Model) State() State {
	return m.state
}

// Err returns the fatal load error, nil outside the error state.
func (m *Model) Err() error {
	return m.loadErr
}

// ReloadErr returns the dismissible reload error, if any.
func (m *Model) ReloadErr() error {
	return m.reloadErr
}

// Articles returns the visible list: filtered by the current selection,
// then sorted. Callers must not modify it.
func (m *Model) Articles() []feed.Article {
	return m.visible
}

// TotalCount returns the size of the complete loaded set.
func (m *Model) TotalCount() int {
	return len(m.articles)
}

// VisibleCount returns the size of the visible list.
func (m *Model) VisibleCount() int {
	return len(m.visible)
}

// UnreadCount returns how many loaded articles are unread.
func (m *Model) UnreadCount() int {
	n := 0
	for _, a := range m.articles {
		if !m.isRead(a.ID) {
			n++
		}
	}
	return n
}

// Selection returns a copy of the current selection state.
func (m *Model) Selection() filter.Selection {
	return m.sel
}

// Index returns the derived source and category indices.
func (m *Model) Index() *index.Index {
	return m.idx
}

// GeneratedAt returns the feed document's generation timestamp.
func (m *Model) GeneratedAt() time.Time {
	return m.generatedAt
}

// IsRead proxies the tracker for row rendering.
func (m *Model) IsRead(id feed.ID) bool {
	return m.isRead(id)
}

// IsSaved proxies the tracker for row rendering.
func (m *Model) IsSaved(id feed.ID) bool {
	return m.isSaved(id)
}

// Now returns the injected clock's current time.
func (m *Model) Now() time.Time {
	return m.clock()
}
