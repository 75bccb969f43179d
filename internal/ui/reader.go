package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// readerSummaryMax caps the summary length shown in the reader pane.
const readerSummaryMax = 2000

// Reader is the full-screen article view: markdown rendered through
// glamour inside a scrollable viewport, with a title bar and key hints.
type Reader struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	article  feed.Article
	width    int
	height   int
}

// NewReader creates an empty reader.
func NewReader() Reader {
	return Reader{viewport: viewport.New(0, 0)}
}

// SetSize resizes the reader. The markdown renderer is rebuilt when the
// wrap width changes.
func (r *Reader) SetSize(width, height int) {
	rebuild := r.renderer == nil || width != r.width
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = height - 2 // title bar and footer
	if r.viewport.Height < 1 {
		r.viewport.Height = 1
	}
	if rebuild {
		wrap := width - 4
		if wrap > 100 {
			wrap = 100
		}
		if wrap < 20 {
			wrap = 20
		}
		renderer, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if renderer != nil {
			r.renderer = renderer
		}
	}
}

// Open loads an article into the reader and scrolls to the top.
func (r *Reader) Open(a feed.Article) {
	r.article = a
	md := articleMarkdown(a)
	body := md
	if r.renderer != nil {
		if out, err := r.renderer.Render(md); err == nil {
			body = out
		}
	}
	r.viewport.SetContent(body)
	r.viewport.GotoTop()
}

// Article returns the article currently shown.
func (r Reader) Article() feed.Article {
	return r.article
}

// Update routes scroll keys to the viewport.
func (r Reader) Update(msg tea.Msg) (Reader, tea.Cmd) {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View renders the title bar, the article body, and the key hints.
func (r Reader) View() string {
	title := r.article.Title
	maxTitle := r.width - 4
	if maxTitle < 10 {
		maxTitle = 10
	}
	if utf8.RuneCountInString(title) > maxTitle {
		runes := []rune(title)
		title = string(runes[:maxTitle-3]) + "..."
	}
	header := ReaderTitle.Width(r.width).Render(title)
	footer := ReaderFooter.Width(r.width).Render("j/k scroll · o open link · s save · esc back")
	return header + "\n" + r.viewport.View() + "\n" + footer
}

// articleMarkdown builds the markdown body for an article.
func articleMarkdown(a feed.Article) string {
	var b strings.Builder

	b.WriteString("# " + a.Title + "\n\n")

	meta := []string{"**" + a.SourceName + "**", a.SourceType.Label()}
	if d := a.EffectiveDate(); !d.IsZero() {
		meta = append(meta, d.Format("Jan 2, 2006 15:04"))
	} else {
		meta = append(meta, "date unknown")
	}
	if a.Rating > 0 {
		meta = append(meta, fmt.Sprintf("rated %d", a.Rating))
	}
	b.WriteString(strings.Join(meta, " · ") + "\n\n")

	if len(a.Labels) > 0 {
		tags := make([]string, len(a.Labels))
		for i, l := range a.Labels {
			tags[i] = "`" + l + "`"
		}
		b.WriteString(strings.Join(tags, " ") + "\n\n")
	}

	if s := feed.CleanSummary(a.Summary, readerSummaryMax); s != "" {
		b.WriteString(s + "\n\n")
	}

	if len(a.Ideas) > 0 {
		b.WriteString("## Key Ideas\n\n")
		for _, idea := range a.Ideas {
			b.WriteString("- " + idea + "\n")
		}
		b.WriteString("\n")
	}

	if a.HasLink() {
		b.WriteString("[Read the original](" + a.URL + ")\n")
	} else {
		b.WriteString("_This item has no destination link._\n")
	}

	return b.String()
}
