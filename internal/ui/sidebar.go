package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/kiosk/internal/feed"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/index"
)

// rowKind says what pressing enter on a sidebar row selects.
type rowKind int

const (
	rowHeader rowKind = iota
	rowMode
	rowSource
	rowCategory
)

// SidebarRow is one line of the navigation pane.
type SidebarRow struct {
	Kind     rowKind
	Label    string
	Count    int
	HasCount bool

	Mode     filter.Mode      // rowMode
	Source   filter.SourceRef // rowSource
	Category string           // rowCategory
}

// Sidebar is the navigation pane. It is rebuilt from the indices after
// every load; the only state it owns is its cursor.
type Sidebar struct {
	rows          []SidebarRow
	cursor        int
	maxSources    int
	maxCategories int
}

// NewSidebar creates a sidebar with the given per-section caps.
func NewSidebar(maxSources, maxCategories int) Sidebar {
	s := Sidebar{maxSources: maxSources, maxCategories: maxCategories}
	s.Rebuild(index.Build(nil), 0)
	return s
}

// Rebuild regenerates the rows from a fresh index. The cursor stays where
// it was when possible, otherwise it parks on the first selectable row.
func (s *Sidebar) Rebuild(idx *index.Index, total int) {
	rows := []SidebarRow{
		{Kind: rowHeader, Label: "FEED"},
		{Kind: rowMode, Label: filter.ModeToday.Label(), Mode: filter.ModeToday},
		{Kind: rowMode, Label: filter.ModeWeek.Label(), Mode: filter.ModeWeek},
		{Kind: rowMode, Label: filter.ModeAll.Label(), Mode: filter.ModeAll, Count: total, HasCount: total > 0},
		{Kind: rowMode, Label: filter.ModeSaved.Label(), Mode: filter.ModeSaved},
	}

	var typeRows []SidebarRow
	for _, t := range feed.KnownTypes() {
		n := idx.TypeTotal(t)
		if n == 0 {
			continue
		}
		typeRows = append(typeRows, SidebarRow{
			Kind: rowMode, Label: t.Label(), Mode: filter.TypeMode(t),
			Count: n, HasCount: true,
		})
	}
	if len(typeRows) > 0 {
		rows = append(rows, SidebarRow{Kind: rowHeader, Label: "TYPES"})
		rows = append(rows, typeRows...)
	}

	if top := idx.TopSources(s.maxSources); len(top) > 0 {
		rows = append(rows, SidebarRow{Kind: rowHeader, Label: "SOURCES"})
		for _, b := range top {
			rows = append(rows, SidebarRow{
				Kind: rowSource, Label: b.Name, Count: b.Count, HasCount: true,
				Source: filter.SourceRef{Type: b.Type, ID: b.ID},
			})
		}
	}

	if cats := idx.TopCategories(s.maxCategories); len(cats) > 0 {
		rows = append(rows, SidebarRow{Kind: rowHeader, Label: "CATEGORIES"})
		for _, b := range cats {
			rows = append(rows, SidebarRow{
				Kind: rowCategory, Label: b.Label, Count: b.Count, HasCount: true,
				Category: b.Label,
			})
		}
	}

	s.rows = rows
	s.clampCursor()
}

// Rows returns the current rows.
func (s Sidebar) Rows() []SidebarRow {
	return s.rows
}

// Selected returns the row under the cursor. Headers are never selected.
func (s Sidebar) Selected() (SidebarRow, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return SidebarRow{}, false
	}
	row := s.rows[s.cursor]
	if row.Kind == rowHeader {
		return SidebarRow{}, false
	}
	return row, true
}

// MoveDown advances the cursor, skipping section headers.
func (s *Sidebar) MoveDown() {
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].Kind != rowHeader {
			s.cursor = i
			return
		}
	}
}

// MoveUp retreats the cursor, skipping section headers.
func (s *Sidebar) MoveUp() {
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].Kind != rowHeader {
			s.cursor = i
			return
		}
	}
}

// clampCursor parks the cursor on the first selectable row when the
// current position no longer points at one.
func (s *Sidebar) clampCursor() {
	if s.cursor >= 0 && s.cursor < len(s.rows) && s.rows[s.cursor].Kind != rowHeader {
		return
	}
	for i, row := range s.rows {
		if row.Kind != rowHeader {
			s.cursor = i
			return
		}
	}
	s.cursor = 0
}

// View renders the pane. The row matching the active selection is tinted;
// the cursor row is highlighted only while the pane has focus.
func (s Sidebar) View(sel filter.Selection, focused bool, width, height int) string {
	var b strings.Builder
	rendered := 0
	for i, row := range s.rows {
		if rendered >= height {
			break
		}

		var line string
		if row.Kind == rowHeader {
			// Blank line between sections.
			if i > 0 && rendered < height-1 {
				b.WriteString("\n")
				rendered++
			}
			line = SidebarHeader.Render(row.Label)
		} else {
			style := SidebarItem
			if s.isActive(row, sel) {
				style = SidebarActive
			}
			if focused && i == s.cursor {
				style = SidebarCursor
			}
			line = style.Render(s.rowText(row, width))
		}

		b.WriteString(line)
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

// rowText lays out label and count within the pane width.
func (s Sidebar) rowText(row SidebarRow, width int) string {
	if !row.HasCount {
		return clip(row.Label, width-3)
	}
	count := fmt.Sprintf("%d", row.Count)
	label := clip(row.Label, width-4-len(count))
	padding := width - 3 - utf8.RuneCountInString(label) - len(count)
	if padding < 1 {
		padding = 1
	}
	return label + strings.Repeat(" ", padding) + count
}

// isActive reports whether the row matches the current selection.
func (s Sidebar) isActive(row SidebarRow, sel filter.Selection) bool {
	switch row.Kind {
	case rowMode:
		return sel.Mode == row.Mode
	case rowSource:
		return sel.Mode == filter.ModeSource && sel.Source == row.Source
	case rowCategory:
		return sel.Mode == filter.ModeCategory && sel.Category == row.Category
	}
	return false
}

// clip shortens a label to max runes.
func clip(s string, max int) string {
	if max < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
