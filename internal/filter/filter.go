// Package filter provides pure filter functions over article slices.
// All functions are simple: articles in, articles out. No side effects,
// and load order is always preserved; sorting happens afterwards.
package filter

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/abelbrown/kiosk/internal/feed"
)

// Lookup answers a membership question about one article ID.
type Lookup func(feed.ID) bool

// Apply returns the subset of articles passing every stage the selection
// makes applicable. Stages are conjunctive; an article must pass all of
// them. The input slice is never modified, and applying the same selection
// twice yields the same subset.
func Apply(articles []feed.Article, sel Selection, now time.Time, isRead, isSaved Lookup) []feed.Article {
	result := articles

	switch sel.Mode {
	case ModeToday:
		result = SameDay(result, now)
	case ModeWeek:
		result = Within(result, now, 7*24*time.Hour)
	case ModeSaved:
		result = Marked(result, isSaved)
	case ModeSource:
		if sel.Source.ID != "" {
			result = BySource(result, sel.Source.ID)
		}
	case ModeCategory:
		if sel.Category != "" {
			result = ByCategory(result, sel.Category)
		}
	case ModeAll:
		// No temporal or type restriction.
	default:
		if t, ok := sel.Mode.SourceType(); ok {
			result = ByType(result, t)
		}
	}

	if sel.UnreadOnly {
		result = Unread(result, isRead)
	}
	if strings.TrimSpace(sel.Search) != "" {
		result = Search(result, sel.Search)
	}

	return result
}

// SameDay keeps articles whose effective date falls on the same calendar
// day as now, in now's location. Calendar equality, not a rolling 24 hours:
// an article from 23:59 yesterday is out one minute after midnight.
// Articles with unknown dates fail.
func SameDay(articles []feed.Article, now time.Time) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}

	y, m, d := now.Date()
	result := make([]feed.Article, 0, len(articles))

	for _, a := range articles {
		ed := a.EffectiveDate()
		if ed.IsZero() {
			continue
		}
		ay, am, ad := ed.In(now.Location()).Date()
		if ay == y && am == m && ad == d {
			result = append(result, a)
		}
	}

	return result
}

// Within keeps articles whose effective date is at or after now minus the
// window. Rolling, not calendar-aligned. Articles with unknown dates fail.
func Within(articles []feed.Article, now time.Time, window time.Duration) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}

	cutoff := now.Add(-window)
	result := make([]feed.Article, 0, len(articles))

	for _, a := range articles {
		ed := a.EffectiveDate()
		if ed.IsZero() {
			continue
		}
		if !ed.Before(cutoff) {
			result = append(result, a)
		}
	}

	return result
}

// ByType keeps articles of one canonical source type.
func ByType(articles []feed.Article, t feed.SourceType) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		if a.SourceType == t {
			result = append(result, a)
		}
	}

	return result
}

// BySource keeps articles from one originating feed, matched on the
// canonical string form of source_id.
func BySource(articles []feed.Article, id feed.ID) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		if a.SourceID == id {
			result = append(result, a)
		}
	}

	return result
}

// ByCategory keeps articles whose labels contain the label, exact match.
func ByCategory(articles []feed.Article, label string) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		if lo.Contains(a.Labels, label) {
			result = append(result, a)
		}
	}

	return result
}

// Marked keeps articles whose ID is in the marked set. A nil lookup keeps
// nothing: without a store, nothing was ever saved.
func Marked(articles []feed.Article, marked Lookup) []feed.Article {
	if len(articles) == 0 || marked == nil {
		return []feed.Article{}
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		if marked(a.ID) {
			result = append(result, a)
		}
	}

	return result
}

// Unread keeps articles the reader has not opened. A nil lookup keeps
// everything: without a store, nothing was ever read.
func Unread(articles []feed.Article, isRead Lookup) []feed.Article {
	if len(articles) == 0 {
		return []feed.Article{}
	}
	if isRead == nil {
		return articles
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		if !isRead(a.ID) {
			result = append(result, a)
		}
	}

	return result
}

// Search keeps articles matching the query as a case-insensitive substring
// of title, summary, or source name. No tokenization, no fuzzy matching.
// A blank query keeps everything.
func Search(articles []feed.Article, query string) []feed.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return articles
	}
	if len(articles) == 0 {
		return []feed.Article{}
	}

	result := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		haystack := strings.ToLower(a.Title + " " + a.Summary + " " + a.SourceName)
		if strings.Contains(haystack, q) {
			result = append(result, a)
		}
	}

	return result
}
