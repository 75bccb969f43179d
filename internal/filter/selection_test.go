package filter

import (
	"testing"

	"github.com/abelbrown/kiosk/internal/feed"
)

func TestNewSelectionDefaults(t *testing.T) {
	sel := NewSelection()
	if sel.Mode != ModeToday {
		t.Errorf("expected default mode today, got %q", sel.Mode)
	}
	if sel.Sort != SortDate {
		t.Errorf("expected default sort date, got %q", sel.Sort)
	}
	if sel.Search != "" || sel.UnreadOnly {
		t.Error("expected empty search and unread-only off")
	}
}

func TestSetSourceClearsCategory(t *testing.T) {
	sel := NewSelection()
	sel.SetCategory("AI")
	sel.SetSource(SourceRef{Type: feed.SourceRSS, ID: "a"})

	if sel.Mode != ModeSource {
		t.Errorf("expected mode source, got %q", sel.Mode)
	}
	if sel.Category != "" {
		t.Errorf("expected category cleared, got %q", sel.Category)
	}
	if sel.Source.ID != "a" {
		t.Errorf("expected source a, got %q", sel.Source.ID)
	}
}

func TestSetCategoryClearsSource(t *testing.T) {
	sel := NewSelection()
	sel.SetSource(SourceRef{Type: feed.SourceRSS, ID: "a"})
	sel.SetCategory("AI")

	if sel.Mode != ModeCategory {
		t.Errorf("expected mode category, got %q", sel.Mode)
	}
	if !sel.Source.IsZero() {
		t.Errorf("expected source cleared, got %+v", sel.Source)
	}
}

func TestSetModeClearsPicks(t *testing.T) {
	sel := NewSelection()
	sel.SetSource(SourceRef{Type: feed.SourceYouTube, ID: "chan"})
	sel.SetMode(ModeWeek)

	if !sel.Source.IsZero() || sel.Category != "" {
		t.Error("expected mode switch to drop source and category picks")
	}
}

func TestSetModeKeepsSearchAndSort(t *testing.T) {
	sel := NewSelection()
	sel.SetSearch("go")
	sel.SetSort(SortRating)
	sel.SetMode(ModeAll)

	if sel.Search != "go" || sel.Sort != SortRating {
		t.Error("expected search and sort to survive a mode switch")
	}
}

func TestModeSourceType(t *testing.T) {
	if _, ok := Mode("youtube").SourceType(); !ok {
		t.Error("expected youtube to be a type mode")
	}
	if _, ok := ModeToday.SourceType(); ok {
		t.Error("expected today not to be a type mode")
	}
	if _, ok := Mode("podcast").SourceType(); ok {
		t.Error("expected unknown tags not to be type modes")
	}
}

func TestModeLabels(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeToday, "Today"},
		{ModeWeek, "This Week"},
		{ModeAll, "All"},
		{ModeSaved, "Saved"},
		{TypeMode(feed.SourceYouTube), "YouTube"},
		{TypeMode(feed.SourceNewsletter), "Newsletters"},
	}
	for _, tt := range tests {
		if got := tt.mode.Label(); got != tt.want {
			t.Errorf("Label(%q): expected %q, got %q", tt.mode, tt.want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw  string
		want Mode
	}{
		{"today", ModeToday},
		{"WEEK", ModeWeek},
		{" all ", ModeAll},
		{"saved", ModeSaved},
		{"rss", TypeMode(feed.SourceRSS)},
		{"youtube", TypeMode(feed.SourceYouTube)},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.raw)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): expected %q, got %q", tt.raw, tt.want, got)
		}
	}

	if _, err := ParseMode("yesterday"); err == nil {
		t.Error("expected an error for an unknown filter")
	}
	if _, err := ParseMode("source"); err == nil {
		t.Error("a bare source mode is not addressable from config")
	}
}

func TestParseSort(t *testing.T) {
	if got, err := ParseSort("Rating"); err != nil || got != SortRating {
		t.Errorf("expected rating sort, got %q (%v)", got, err)
	}
	if got, err := ParseSort("date"); err != nil || got != SortDate {
		t.Errorf("expected date sort, got %q (%v)", got, err)
	}
	if _, err := ParseSort("alphabetical"); err == nil {
		t.Error("expected an error for an unknown sort")
	}
}
