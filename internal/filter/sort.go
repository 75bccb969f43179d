package filter

import (
	"sort"

	"github.com/abelbrown/kiosk/internal/feed"
)

// Sorted returns a new slice ordered by the sort mode. Stable: articles
// that compare equal keep their relative load order. The input slice is
// never modified.
func Sorted(articles []feed.Article, mode Sort) []feed.Article {
	sorted := make([]feed.Article, len(articles))
	copy(sorted, articles)

	switch mode {
	case SortRating:
		// Descending rating; unrated articles (rating 0) sink to the end.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	default:
		// Descending effective date; unknown dates (zero time) sort last.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectiveDate().After(sorted[j].EffectiveDate())
		})
	}

	return sorted
}
