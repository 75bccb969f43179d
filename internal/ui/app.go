package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/view"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sidebarWidth is the fixed width of the navigation pane.
const sidebarWidth = 26

// focusArea identifies which pane receives movement keys.
type focusArea int

const (
	focusList focusArea = iota
	focusSidebar
)

// App is the root Bubble Tea model. All domain state lives in the view
// model; App only holds presentation state: focus, cursors, panes.
type App struct {
	view *view.Model

	sidebar Sidebar
	reader  Reader
	search  textinput.Model
	spinner spinner.Model

	focus     focusArea
	cursor    int
	reading   bool
	searching bool
	err       error

	width  int
	height int
	ready  bool
}

// NewApp creates the root model around a prepared view model.
func NewApp(vm *view.Model, maxSources, maxCategories int) App {
	ti := textinput.New()
	ti.Placeholder = "title, summary, source"
	ti.Prompt = "/"
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return App{
		view:    vm,
		sidebar: NewSidebar(maxSources, maxCategories),
		reader:  NewReader(),
		search:  ti,
		spinner: sp,
	}
}

// Init kicks off the one automatic feed load.
func (a App) Init() tea.Cmd {
	if a.view.BeginLoad() {
		return tea.Batch(a.loadCmd(), a.spinner.Tick)
	}
	return nil
}

// loadCmd fetches the feed document off the update loop.
func (a App) loadCmd() tea.Cmd {
	loader := a.view.Loader()
	return func() tea.Msg {
		doc, err := loader.Load(context.Background())
		return DocumentLoaded{Doc: doc, Err: err}
	}
}

// openCmd hands a link to the system browser.
func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return OpenedInBrowser{URL: url, Err: openBrowser(url)}
	}
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.search.Width = msg.Width - 16
		a.reader.SetSize(msg.Width, msg.Height)
		return a, nil

	case DocumentLoaded:
		a.view.ApplyLoad(msg.Doc, msg.Err)
		a.sidebar.Rebuild(a.view.Index(), a.view.TotalCount())
		a.clampCursor()
		return a, nil

	case OpenedInBrowser:
		if msg.Err != nil {
			a.err = fmt.Errorf("open %s: %w", msg.URL, msg.Err)
		}
		return a, nil

	case spinner.TickMsg:
		if a.view.State() == view.StateLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while typing a query.
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.searching {
		return a.handleSearchKey(msg)
	}
	if a.reading {
		return a.handleReaderKey(msg)
	}

	// A pending error line is dismissed by the next key press.
	if a.err != nil {
		a.err = nil
	}
	if a.view.ReloadErr() != nil {
		a.view.DismissReloadError()
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "tab":
		if a.focus == focusList {
			a.focus = focusSidebar
		} else {
			a.focus = focusList
		}
		return a, nil

	case "/":
		a.searching = true
		a.focus = focusList
		a.search.Focus()
		return a, textinput.Blink

	case "r":
		if a.view.BeginLoad() {
			return a, tea.Batch(a.loadCmd(), a.spinner.Tick)
		}
		return a, nil

	case "U":
		a.view.ToggleUnreadOnly()
		a.clampCursor()
		return a, nil

	case "1":
		a.view.SetSort(filter.SortDate)
		return a, nil

	case "2":
		a.view.SetSort(filter.SortRating)
		return a, nil
	}

	if a.focus == focusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleListKey(msg)
}

// handleSidebarKey moves the sidebar cursor and applies selections.
func (a App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.sidebar.MoveDown()

	case "k", "up":
		a.sidebar.MoveUp()

	case "enter":
		if row, ok := a.sidebar.Selected(); ok {
			a.applyRow(row)
			a.cursor = 0
			a.focus = focusList
		}
	}
	return a, nil
}

// applyRow translates a sidebar choice into a view mutation.
func (a *App) applyRow(row SidebarRow) {
	switch row.Kind {
	case rowMode:
		a.view.SetMode(row.Mode)
	case rowSource:
		a.view.SetSource(row.Source)
	case rowCategory:
		a.view.SetCategory(row.Category)
	}
}

// handleListKey moves the article cursor and fires article actions.
func (a App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	articles := a.view.Articles()

	switch msg.String() {
	case "j", "down":
		if a.cursor < len(articles)-1 {
			a.cursor++
		}

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "g", "home":
		a.cursor = 0

	case "G", "end":
		if len(articles) > 0 {
			a.cursor = len(articles) - 1
		}

	case "enter":
		if art, ok := a.selected(); ok {
			a.view.MarkRead(art.ID)
			a.reader.Open(art)
			a.reading = true
			a.clampCursor()
		}

	case "u":
		if art, ok := a.selected(); ok {
			a.view.MarkUnread(art.ID)
			a.clampCursor()
		}

	case "s":
		if art, ok := a.selected(); ok {
			a.view.ToggleSaved(art.ID)
			a.clampCursor()
		}

	case "o":
		if art, ok := a.selected(); ok && art.HasLink() {
			return a, openCmd(art.URL)
		}

	case "esc":
		if a.view.Selection().Search != "" {
			a.view.SetSearch("")
			a.search.SetValue("")
			a.clampCursor()
		}
	}
	return a, nil
}

// handleSearchKey feeds keystrokes into the query; every change narrows
// the visible list immediately.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		a.search.SetValue("")
		a.view.SetSearch("")
		a.clampCursor()
		return a, nil

	case "enter":
		a.searching = false
		a.search.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.view.SetSearch(a.search.Value())
	a.clampCursor()
	return a, cmd
}

// handleReaderKey drives the full-screen reader.
func (a App) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.reading = false
		a.clampCursor()
		return a, nil

	case "s":
		a.view.ToggleSaved(a.reader.Article().ID)
		return a, nil

	case "o":
		if art := a.reader.Article(); art.HasLink() {
			return a, openCmd(art.URL)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.reader, cmd = a.reader.Update(msg)
	return a, cmd
}

// selected returns the article under the list cursor.
func (a App) selected() (feed.Article, bool) {
	articles := a.view.Articles()
	if a.cursor < 0 || a.cursor >= len(articles) {
		return feed.Article{}, false
	}
	return articles[a.cursor], true
}

// clampCursor keeps the cursor inside the recomputed visible list.
func (a *App) clampCursor() {
	n := a.view.VisibleCount()
	if n == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.reading {
		return a.reader.View()
	}

	switch a.view.State() {
	case view.StateError:
		return RenderErrorScreen(a.view.Err(), a.width, a.height)
	case view.StateIdle, view.StateLoading:
		if a.view.TotalCount() == 0 {
			content := fmt.Sprintf("%s Loading feed...", a.spinner.View())
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
		}
	}

	searchVisible := a.searching || a.view.Selection().Search != ""

	chrome := 1 // status bar
	if searchVisible {
		chrome++
	}
	if a.barError() != nil {
		chrome++
	}
	contentHeight := a.height - chrome
	if contentHeight < 1 {
		contentHeight = 1
	}

	listWidth := a.width - sidebarWidth - 1
	if listWidth < 20 {
		listWidth = 20
	}

	sidebarView := a.sidebar.View(a.view.Selection(), a.focus == focusSidebar, sidebarWidth, contentHeight)
	listView := RenderList(a.view.Articles(), a.cursor, listWidth, contentHeight,
		a.view.IsRead, a.view.IsSaved, a.view.Now(), a.emptyHint())

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(sidebarWidth).Height(contentHeight).Render(sidebarView),
		" ",
		lipgloss.NewStyle().Width(listWidth).Height(contentHeight).Render(listView),
	)

	var bars []string
	if searchVisible {
		bars = append(bars, RenderSearchBar(a.search.View(), a.view.VisibleCount(), a.view.TotalCount(), a.width))
	}
	if err := a.barError(); err != nil {
		bars = append(bars, ErrorStyle.Width(a.width).Render("Error: "+err.Error()+" (press any key to dismiss)"))
	}
	bars = append(bars, RenderStatusBar(a.cursor, a.view.VisibleCount(), a.view.UnreadCount(),
		a.viewLabel(), a.feedAge(), a.width, a.view.State() == view.StateLoading))

	return main + "\n" + strings.Join(bars, "\n")
}

// barError returns whichever transient error occupies the error line.
func (a App) barError() error {
	if a.err != nil {
		return a.err
	}
	return a.view.ReloadErr()
}

// viewLabel describes the active selection for the status bar.
func (a App) viewLabel() string {
	sel := a.view.Selection()
	label := sel.Mode.Label()
	switch sel.Mode {
	case filter.ModeSource:
		if name, ok := a.view.Index().SourceName(sel.Source.Type, sel.Source.ID); ok {
			label = name
		}
	case filter.ModeCategory:
		label = sel.Category
	}
	parts := []string{label, sel.Sort.Label()}
	if sel.UnreadOnly {
		parts = append(parts, "unread only")
	}
	return strings.Join(parts, " · ")
}

// feedAge describes how old the loaded document is.
func (a App) feedAge() string {
	gen := a.view.GeneratedAt()
	if gen.IsZero() {
		return ""
	}
	return " · feed " + formatAge(a.view.Now().Sub(gen))
}

// emptyHint is the message shown when the visible list is empty.
func (a App) emptyHint() string {
	if a.view.TotalCount() == 0 {
		return "The feed is empty. Press r to reload."
	}
	if a.view.Selection().Search != "" {
		return "No articles match this search."
	}
	return "No articles in this view. Tab to the sidebar to pick another."
}

// Cursor returns the current list cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// openBrowser hands a URL to the platform opener.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
