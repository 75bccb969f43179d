package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/kiosk/internal/feed"
)

func never(feed.ID) bool { return false }

func TestFormatAge(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "now"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{26 * time.Hour, "1d"},
		{8 * 24 * time.Hour, "1w"},
	}
	for _, c := range cases {
		if got := formatAge(c.d); got != c.want {
			t.Errorf("formatAge(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestShortSource(t *testing.T) {
	if got := shortSource("Go Blog"); got != "Go Blog" {
		t.Errorf("short names should pass through, got %q", got)
	}
	long := shortSource("An Extremely Verbose Publication Name")
	if !strings.HasSuffix(long, "…") {
		t.Errorf("long names should be clipped with an ellipsis, got %q", long)
	}
}

func TestRenderListEmpty(t *testing.T) {
	out := RenderList(nil, 0, 80, 20, never, never, testNow, "Nothing today.")
	if !strings.Contains(out, "Nothing today.") {
		t.Errorf("empty list should show the hint, got %q", out)
	}
}

func TestRenderListShowsArticles(t *testing.T) {
	doc := testDoc()
	out := RenderList(doc.Items, 0, 100, 20, never, never, testNow, "")

	if !strings.Contains(out, "Go release notes") {
		t.Error("list should contain the first title")
	}
	if !strings.Contains(out, "Go Blog") {
		t.Error("list should contain the source badge")
	}
	if !strings.Contains(out, "90") {
		t.Error("list should render the rating badge")
	}
}

func TestRenderListSavedMark(t *testing.T) {
	doc := testDoc()
	saved := func(id feed.ID) bool { return id == "1" }
	out := RenderList(doc.Items, 0, 100, 20, never, saved, testNow, "")
	if !strings.Contains(out, "★") {
		t.Error("saved articles should carry a star")
	}
}

func TestRenderListTruncatesLongTitles(t *testing.T) {
	a := feed.Article{
		ID:          "long",
		Title:       strings.Repeat("very long title ", 20),
		SourceType:  feed.SourceRSS,
		SourceID:    "s",
		SourceName:  "Src",
		PublishedAt: testNow.Add(-time.Hour),
	}
	line := renderArticleLine(a, false, false, false, 60, testNow)
	if !strings.Contains(line, "...") {
		t.Errorf("overlong titles should be cut, got %q", line)
	}
}

func TestRenderListScrollsToCursor(t *testing.T) {
	var articles []feed.Article
	for i := 0; i < 30; i++ {
		articles = append(articles, feed.Article{
			ID:          feed.ID(fmt.Sprintf("a%d", i)),
			Title:       fmt.Sprintf("Article number %d", i),
			SourceType:  feed.SourceRSS,
			SourceID:    "s",
			SourceName:  "Src",
			PublishedAt: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}

	out := RenderList(articles, 29, 100, 10, never, never, testNow, "")
	if !strings.Contains(out, "Article number 29") {
		t.Error("the cursor row should always be visible")
	}
	if strings.Contains(out, "Article number 0") {
		t.Error("rows scrolled past should not render")
	}
}

func TestRenderListZeroDate(t *testing.T) {
	a := feed.Article{
		ID: "nodate", Title: "Undated item",
		SourceType: feed.SourceRSS, SourceID: "s", SourceName: "Src",
	}
	line := renderArticleLine(a, false, false, false, 80, testNow)
	if !strings.Contains(line, "-") {
		t.Errorf("missing dates should render a dash, got %q", line)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(0, 3, 2, "Today · Date", " · feed 1h", 120, false)
	if !strings.Contains(out, "1/3") {
		t.Errorf("status bar should show position, got %q", out)
	}
	if !strings.Contains(out, "2 unread") {
		t.Errorf("status bar should show the unread count, got %q", out)
	}
	if !strings.Contains(out, "Today") {
		t.Errorf("status bar should show the view label, got %q", out)
	}
}

func TestRenderStatusBarLoading(t *testing.T) {
	out := RenderStatusBar(0, 0, 0, "Today", "", 120, true)
	if !strings.Contains(out, "Loading") {
		t.Errorf("status bar should flag an in-flight reload, got %q", out)
	}
}

func TestRenderSearchBar(t *testing.T) {
	out := RenderSearchBar("/rust", 2, 10, 80)
	if !strings.Contains(out, "2/10") {
		t.Errorf("search bar should show match counts, got %q", out)
	}
}

func TestRenderErrorScreen(t *testing.T) {
	out := RenderErrorScreen(errors.New("dial tcp: timeout"), 80, 24)
	if !strings.Contains(out, "Unable to load the feed") {
		t.Error("error screen should carry the headline")
	}
	if !strings.Contains(out, "dial tcp: timeout") {
		t.Error("error screen should include the cause")
	}
	if !strings.Contains(out, "r to retry") {
		t.Error("error screen should mention the retry key")
	}
}
