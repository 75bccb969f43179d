package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/charmbracelet/lipgloss"
)

// RenderList renders the visible article rows with the cursor kept in view.
func RenderList(articles []feed.Article, cursor, width, height int, isRead, isSaved func(feed.ID) bool, now time.Time, emptyHint string) string {
	if len(articles) == 0 {
		return HelpStyle.Render(emptyHint)
	}

	if height < 1 {
		height = 1
	}
	offset := 0
	if cursor >= height {
		offset = cursor - height + 1
	}

	var b strings.Builder
	rendered := 0
	for i := offset; i < len(articles) && rendered < height; i++ {
		a := articles[i]
		line := renderArticleLine(a, i == cursor, isRead(a.ID), isSaved(a.ID), width, now)
		b.WriteString(line)
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

// renderArticleLine renders a single row: saved mark, source badge, title,
// rating badge, and a right-aligned compact age. Read titles are dimmed.
func renderArticleLine(a feed.Article, selected, read, saved bool, width int, now time.Time) string {
	badge := SourceBadge.Render(shortSource(a.SourceName))
	badgeWidth := lipgloss.Width(badge)

	mark := "  "
	if saved {
		mark = SavedMark.Render("★ ")
	}

	rating := ""
	ratingWidth := 0
	if a.Rating > 0 {
		rating = RatingBadge.Render(fmt.Sprintf(" %d", a.Rating))
		ratingWidth = lipgloss.Width(rating)
	}

	age := "-"
	if ed := a.EffectiveDate(); !ed.IsZero() {
		age = formatAge(now.Sub(ed))
	}
	const ageWidth = 6

	titleWidth := width - badgeWidth - ratingWidth - ageWidth - 8
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := a.Title
	if utf8.RuneCountInString(title) > titleWidth {
		runes := []rune(title)
		title = string(runes[:titleWidth-3]) + "..."
	}

	var titleStyle lipgloss.Style
	switch {
	case selected:
		titleStyle = SelectedItem
		if read {
			// Dim the text for read articles even when selected.
			titleStyle = titleStyle.Foreground(lipgloss.Color("250")).Bold(false)
		}
	case read:
		titleStyle = ReadItem
	default:
		titleStyle = NormalItem
	}

	left := fmt.Sprintf("%s%s%s%s", mark, badge, titleStyle.Render(title), rating)
	leftWidth := lipgloss.Width(left)
	padding := width - leftWidth - ageWidth - 1
	if padding < 0 {
		padding = 0
	}
	agePad := ageWidth - utf8.RuneCountInString(age)
	if agePad < 0 {
		agePad = 0
	}
	return left + strings.Repeat(" ", padding) + MetaItem.Render(strings.Repeat(" ", agePad)+age)
}

// shortSource clamps long source names so the badge column stays narrow.
func shortSource(name string) string {
	const max = 14
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	runes := []rune(name)
	return string(runes[:max-1]) + "…"
}

// formatAge renders a compact age for the row's right edge.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	}
}

// RenderStatusBar renders the bottom bar: position, the active view and
// unread count on the left, key hints on the right.
func RenderStatusBar(cursor, visible, unread int, viewLabel, feedAge string, width int, loading bool) string {
	var position string
	switch {
	case loading:
		position = " Loading... "
	case visible == 0:
		position = " 0/0 "
	default:
		position = fmt.Sprintf(" %d/%d ", cursor+1, visible)
	}

	info := StatusBarText.Render(fmt.Sprintf("%s · %d unread%s ", viewLabel, unread, feedAge))

	keys := []string{
		StatusBarKey.Render("tab") + StatusBarText.Render(":sidebar"),
		StatusBarKey.Render("j/k") + StatusBarText.Render(":nav"),
		StatusBarKey.Render("enter") + StatusBarText.Render(":open"),
		StatusBarKey.Render("s") + StatusBarText.Render(":save"),
		StatusBarKey.Render("/") + StatusBarText.Render(":search"),
		StatusBarKey.Render("r") + StatusBarText.Render(":reload"),
		StatusBarKey.Render("q") + StatusBarText.Render(":quit"),
	}
	keyHints := strings.Join(keys, " ")

	padding := width - lipgloss.Width(position) - lipgloss.Width(info) - lipgloss.Width(keyHints)
	if padding < 0 {
		padding = 0
	}

	bar := position + info + strings.Repeat(" ", padding) + keyHints
	return StatusBar.Width(width).Render(bar)
}

// RenderSearchBar renders the search input line with the match count.
func RenderSearchBar(inputView string, matched, total, width int) string {
	count := SearchBarCount.Render(fmt.Sprintf(" %d/%d", matched, total))
	content := inputView + count
	padding := width - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}
	return SearchBar.Width(width).Render(content + strings.Repeat(" ", padding))
}

// RenderErrorScreen renders the full-screen panel shown when the initial
// load fails and there is nothing to display.
func RenderErrorScreen(err error, width, height int) string {
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		ErrorStyle.Render("Unable to load the feed"),
		StatusBarText.Render(cause),
		"",
		HelpStyle.Render("r to retry · q to quit"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
