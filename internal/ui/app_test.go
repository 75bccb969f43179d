package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/readstate"
	"github.com/abelbrown/kiosk/internal/view"
	tea "github.com/charmbracelet/bubbletea"
)

// stubLoader returns a canned document without any network.
type stubLoader struct {
	doc *feed.Document
	err error
}

func (s *stubLoader) Load(ctx context.Context) (*feed.Document, error) {
	return s.doc, s.err
}

var testNow = time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testDoc() *feed.Document {
	return &feed.Document{
		Items: []feed.Article{
			{
				ID: "1", Title: "Go release notes", SourceType: feed.SourceRSS,
				SourceID: "go-blog", SourceName: "Go Blog",
				PublishedAt: testNow.Add(-2 * time.Hour),
				Rating:      40, Labels: []string{"Go"},
				URL: "https://example.com/1", Summary: "What changed in the release.",
			},
			{
				ID: "2", Title: "Conference talk video", SourceType: feed.SourceYouTube,
				SourceID: "conf", SourceName: "GopherCon",
				PublishedAt: testNow.Add(-3 * time.Hour),
				Rating:      90,
				URL:         "https://example.com/2",
			},
			{
				ID: "3", Title: "Weekly newsletter issue", SourceType: feed.SourceNewsletter,
				SourceID: "wk", SourceName: "Go Weekly",
				PublishedAt: testNow.Add(-30 * time.Minute),
				Labels:      []string{"Go", "News"},
				URL:         "https://example.com/3",
			},
		},
		GeneratedAt: testNow.Add(-time.Hour),
		TotalItems:  3,
	}
}

// loadedApp returns an app sized and loaded with the test document.
func loadedApp(t *testing.T) App {
	t.Helper()
	vm := view.New(&stubLoader{doc: testDoc()}, readstate.New(nil), fixedClock)
	app := NewApp(vm, 8, 8)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(App)

	model, _ = app.Update(DocumentLoaded{Doc: testDoc()})
	app = model.(App)

	if app.view.State() != view.StateReady {
		t.Fatalf("expected ready state after load, got %v", app.view.State())
	}
	return app
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAppInit(t *testing.T) {
	vm := view.New(&stubLoader{doc: testDoc()}, readstate.New(nil), fixedClock)
	app := NewApp(vm, 8, 8)

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("Init should return a load command")
	}
	if vm.State() != view.StateLoading {
		t.Errorf("expected loading state after Init, got %v", vm.State())
	}

	// A second Init while loading must not start another fetch.
	if cmd := app.Init(); cmd != nil {
		t.Error("Init should return nil while a load is in flight")
	}
}

func TestAppNavigation(t *testing.T) {
	app := loadedApp(t)

	model, _ := app.Update(key('j'))
	updated := model.(App)
	if updated.Cursor() != 1 {
		t.Errorf("j should move cursor to 1, got %d", updated.Cursor())
	}

	model, _ = updated.Update(key('k'))
	updated = model.(App)
	if updated.Cursor() != 0 {
		t.Errorf("k should move cursor to 0, got %d", updated.Cursor())
	}

	model, _ = updated.Update(key('k'))
	updated = model.(App)
	if updated.Cursor() != 0 {
		t.Errorf("k at top should keep cursor at 0, got %d", updated.Cursor())
	}

	model, _ = updated.Update(key('G'))
	updated = model.(App)
	if updated.Cursor() != updated.view.VisibleCount()-1 {
		t.Errorf("G should move cursor to the last row, got %d", updated.Cursor())
	}

	model, _ = updated.Update(key('g'))
	updated = model.(App)
	if updated.Cursor() != 0 {
		t.Errorf("g should move cursor to 0, got %d", updated.Cursor())
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated = model.(App)
	if updated.Cursor() != 1 {
		t.Errorf("down arrow should move cursor to 1, got %d", updated.Cursor())
	}
}

func TestAppEnterOpensReaderAndMarksRead(t *testing.T) {
	app := loadedApp(t)

	art := app.view.Articles()[0]
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := model.(App)

	if !updated.reading {
		t.Fatal("enter should open the reader")
	}
	if updated.reader.Article().ID != art.ID {
		t.Errorf("reader should show article %q, got %q", art.ID, updated.reader.Article().ID)
	}
	if !updated.view.IsRead(art.ID) {
		t.Error("opening an article should mark it read")
	}

	// esc returns to the list.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = model.(App)
	if updated.reading {
		t.Error("esc should close the reader")
	}
}

func TestAppMarkUnread(t *testing.T) {
	app := loadedApp(t)
	id := app.view.Articles()[0].ID

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := model.(App)
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = model.(App)

	model, _ = updated.Update(key('u'))
	updated = model.(App)
	if updated.view.IsRead(id) {
		t.Error("u should mark the article unread again")
	}
}

func TestAppToggleSaved(t *testing.T) {
	app := loadedApp(t)
	id := app.view.Articles()[0].ID

	model, _ := app.Update(key('s'))
	updated := model.(App)
	if !updated.view.IsSaved(id) {
		t.Error("s should save the article")
	}

	model, _ = updated.Update(key('s'))
	updated = model.(App)
	if updated.view.IsSaved(id) {
		t.Error("s again should unsave the article")
	}
}

func TestAppSearchNarrowsList(t *testing.T) {
	app := loadedApp(t)
	app.view.SetMode(filter.ModeAll)

	model, _ := app.Update(key('/'))
	updated := model.(App)
	if !updated.searching {
		t.Fatal("/ should enter search mode")
	}

	for _, r := range "video" {
		model, _ = updated.Update(key(r))
		updated = model.(App)
	}

	if got := updated.view.Selection().Search; got != "video" {
		t.Errorf("expected query %q, got %q", "video", got)
	}
	if updated.view.VisibleCount() != 1 {
		t.Errorf("expected 1 match for video, got %d", updated.view.VisibleCount())
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = model.(App)
	if updated.searching {
		t.Error("esc should leave search mode")
	}
	if updated.view.Selection().Search != "" {
		t.Error("esc should clear the query")
	}
	if updated.view.VisibleCount() != 3 {
		t.Errorf("expected full list after clearing, got %d", updated.view.VisibleCount())
	}
}

func TestAppSearchEnterKeepsQuery(t *testing.T) {
	app := loadedApp(t)
	app.view.SetMode(filter.ModeAll)

	model, _ := app.Update(key('/'))
	updated := model.(App)
	for _, r := range "go" {
		model, _ = updated.Update(key(r))
		updated = model.(App)
	}
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated = model.(App)

	if updated.searching {
		t.Error("enter should leave search mode")
	}
	if updated.view.Selection().Search != "go" {
		t.Errorf("enter should keep the query, got %q", updated.view.Selection().Search)
	}
}

func TestAppSidebarApply(t *testing.T) {
	app := loadedApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	updated := model.(App)
	if updated.focus != focusSidebar {
		t.Fatal("tab should focus the sidebar")
	}

	// Cursor starts on Today; one step down is This Week.
	model, _ = updated.Update(key('j'))
	updated = model.(App)
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated = model.(App)

	if got := updated.view.Selection().Mode; got != filter.ModeWeek {
		t.Errorf("expected week mode after sidebar pick, got %q", got)
	}
	if updated.focus != focusList {
		t.Error("applying a sidebar row should return focus to the list")
	}
	if updated.Cursor() != 0 {
		t.Errorf("applying a filter should reset the cursor, got %d", updated.Cursor())
	}
}

func TestAppSortKeys(t *testing.T) {
	app := loadedApp(t)

	model, _ := app.Update(key('2'))
	updated := model.(App)
	if got := updated.view.Selection().Sort; got != filter.SortRating {
		t.Errorf("2 should switch to rating sort, got %q", got)
	}

	model, _ = updated.Update(key('1'))
	updated = model.(App)
	if got := updated.view.Selection().Sort; got != filter.SortDate {
		t.Errorf("1 should switch to date sort, got %q", got)
	}
}

func TestAppUnreadOnlyToggle(t *testing.T) {
	app := loadedApp(t)

	model, _ := app.Update(key('U'))
	updated := model.(App)
	if !updated.view.Selection().UnreadOnly {
		t.Error("U should enable unread-only")
	}

	model, _ = updated.Update(key('U'))
	updated = model.(App)
	if updated.view.Selection().UnreadOnly {
		t.Error("U again should disable unread-only")
	}
}

func TestAppQuit(t *testing.T) {
	app := loadedApp(t)

	_, cmd := app.Update(key('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestAppQuitCtrlC(t *testing.T) {
	app := loadedApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestAppWindowSize(t *testing.T) {
	vm := view.New(&stubLoader{doc: testDoc()}, readstate.New(nil), fixedClock)
	app := NewApp(vm, 8, 8)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := model.(App)

	if updated.width != 120 || updated.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", updated.width, updated.height)
	}
	if !updated.ready {
		t.Error("app should be ready after WindowSizeMsg")
	}
}

func TestAppViewNotReady(t *testing.T) {
	vm := view.New(&stubLoader{doc: testDoc()}, readstate.New(nil), fixedClock)
	app := NewApp(vm, 8, 8)

	if got := app.View(); got != "Loading..." {
		t.Errorf("View before sizing should show 'Loading...', got %q", got)
	}
}

func TestAppViewErrorScreen(t *testing.T) {
	vm := view.New(&stubLoader{err: errors.New("connection refused")}, readstate.New(nil), fixedClock)
	app := NewApp(vm, 8, 8)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(App)
	model, _ = app.Update(DocumentLoaded{Err: errors.New("connection refused")})
	app = model.(App)

	got := app.View()
	if !strings.Contains(got, "Unable to load the feed") {
		t.Error("error view should show the failure panel")
	}
	if !strings.Contains(got, "connection refused") {
		t.Error("error view should include the cause")
	}
}

func TestAppReloadFailureKeepsList(t *testing.T) {
	app := loadedApp(t)

	model, _ := app.Update(DocumentLoaded{Err: errors.New("boom")})
	updated := model.(App)

	if updated.view.VisibleCount() == 0 {
		t.Fatal("reload failure should keep the previous articles")
	}
	if !strings.Contains(updated.View(), "press any key to dismiss") {
		t.Error("reload failure should surface a dismissible error line")
	}

	// Any key dismisses the error line.
	model, _ = updated.Update(key('j'))
	updated = model.(App)
	if updated.barError() != nil {
		t.Error("key press should dismiss the reload error")
	}
}

func TestAppViewShowsArticles(t *testing.T) {
	app := loadedApp(t)

	got := app.View()
	if !strings.Contains(got, "Weekly newsletter issue") {
		t.Error("view should render today's articles")
	}
	if !strings.Contains(got, "Today") {
		t.Error("view should render the sidebar rows")
	}
}
