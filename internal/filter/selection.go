package filter

import (
	"fmt"
	"strings"

	"github.com/abelbrown/kiosk/internal/feed"
)

// Mode is the primary navigation selection: a time window, a source type
// tag, one specific feed, one category label, or the saved shelf.
type Mode string

const (
	ModeToday    Mode = "today"
	ModeWeek     Mode = "week"
	ModeAll      Mode = "all"
	ModeSaved    Mode = "saved"
	ModeSource   Mode = "source"
	ModeCategory Mode = "category"
)

// TypeMode wraps a source type tag as a selection mode.
func TypeMode(t feed.SourceType) Mode {
	return Mode(t)
}

// SourceType reports whether the mode is one of the known source type tags.
func (m Mode) SourceType() (feed.SourceType, bool) {
	for _, t := range feed.KnownTypes() {
		if Mode(t) == m {
			return t, true
		}
	}
	return "", false
}

// Label returns the display name for a mode.
func (m Mode) Label() string {
	switch m {
	case ModeToday:
		return "Today"
	case ModeWeek:
		return "This Week"
	case ModeAll:
		return "All"
	case ModeSaved:
		return "Saved"
	case ModeSource:
		return "Source"
	case ModeCategory:
		return "Category"
	}
	if t, ok := m.SourceType(); ok {
		return t.Label()
	}
	return string(m)
}

// ParseMode maps a config or flag value onto a mode. Time windows, the
// saved shelf, and the known source type tags are accepted.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case ModeToday, ModeWeek, ModeAll, ModeSaved:
		return m, nil
	}
	if _, ok := m.SourceType(); ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown filter %q", raw)
}

// Sort selects the comparator for the visible list.
type Sort string

const (
	SortDate   Sort = "date"
	SortRating Sort = "rating"
)

// Label returns the display name for a sort order.
func (s Sort) Label() string {
	if s == SortRating {
		return "Rating"
	}
	return "Date"
}

// ParseSort maps a config or flag value onto a sort order.
func ParseSort(raw string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(raw))) {
	case SortDate:
		return SortDate, nil
	case SortRating:
		return SortRating, nil
	}
	return "", fmt.Errorf("unknown sort %q", raw)
}

// SourceRef identifies one originating feed within a source type.
type SourceRef struct {
	Type feed.SourceType
	ID   feed.ID
}

// IsZero reports whether no feed is referenced.
func (r SourceRef) IsZero() bool {
	return r.ID == "" && r.Type == ""
}

// Selection is the session-local view state: one mode, its mode-specific
// pick, the search query, the sort order, and the unread-only toggle.
// Mutators keep it consistent: a source pick and a category pick can never
// both be live, and switching the primary mode drops both.
type Selection struct {
	Mode       Mode
	Source     SourceRef // meaningful only when Mode == ModeSource
	Category   string    // meaningful only when Mode == ModeCategory
	Search     string
	Sort       Sort
	UnreadOnly bool
}

// NewSelection returns the session defaults: today's articles, newest first.
func NewSelection() Selection {
	return Selection{Mode: ModeToday, Sort: SortDate}
}

// SetMode selects a primary mode and clears any source or category pick.
func (s *Selection) SetMode(m Mode) {
	s.Mode = m
	s.Source = SourceRef{}
	s.Category = ""
}

// SetSource narrows the view to one feed.
func (s *Selection) SetSource(ref SourceRef) {
	s.Mode = ModeSource
	s.Source = ref
	s.Category = ""
}

// SetCategory narrows the view to one label.
func (s *Selection) SetCategory(label string) {
	s.Mode = ModeCategory
	s.Category = label
	s.Source = SourceRef{}
}

// SetSearch replaces the search query.
func (s *Selection) SetSearch(query string) {
	s.Search = query
}

// SetSort replaces the sort order.
func (s *Selection) SetSort(mode Sort) {
	s.Sort = mode
}

// ToggleUnreadOnly flips the unread-only restriction.
func (s *Selection) ToggleUnreadOnly() {
	s.UnreadOnly = !s.UnreadOnly
}
