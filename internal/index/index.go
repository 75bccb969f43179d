// Package index derives the sidebar navigation structure from a loaded
// article set: per-source and per-category counts with deterministic
// presentation order. Indices are rebuilt in full whenever the set changes;
// nothing here is maintained incrementally.
package index

import (
	"sort"

	"github.com/samber/lo"

	"github.com/abelbrown/kiosk/internal/feed"
)

// SourceBucket is one originating feed: its identity, display name, and
// how many loaded articles it contributed.
type SourceBucket struct {
	Type  feed.SourceType
	ID    feed.ID
	Name  string
	Count int
}

// CategoryBucket is one label and how many articles carry it.
type CategoryBucket struct {
	Label string
	Count int
}

// Index holds the derived navigation counts for one article set.
// Presentation order everywhere is descending count, ties in discovery
// order, so a fixed input always yields the same sidebar.
type Index struct {
	Sources    map[feed.SourceType][]SourceBucket
	Categories []CategoryBucket
	TypeTotals map[feed.SourceType]int
	Total      int

	ordered []SourceBucket // all buckets across types, presentation order
}

type sourceKey struct {
	t  feed.SourceType
	id feed.ID
}

// Build derives the full index from scratch. The display name for a
// (type, id) pair is the first-seen source_name; articles disagreeing
// later do not rename the bucket. An article with N labels contributes to
// N category buckets, so category counts may sum past Total.
func Build(articles []feed.Article) *Index {
	idx := &Index{
		Sources:    make(map[feed.SourceType][]SourceBucket),
		TypeTotals: make(map[feed.SourceType]int),
		Total:      len(articles),
	}

	position := make(map[sourceKey]int)
	buckets := make([]SourceBucket, 0)
	catPosition := make(map[string]int)
	cats := make([]CategoryBucket, 0)

	for _, a := range articles {
		idx.TypeTotals[a.SourceType]++

		k := sourceKey{a.SourceType, a.SourceID}
		if i, ok := position[k]; ok {
			buckets[i].Count++
		} else {
			position[k] = len(buckets)
			buckets = append(buckets, SourceBucket{
				Type:  a.SourceType,
				ID:    a.SourceID,
				Name:  a.SourceName,
				Count: 1,
			})
		}

		for _, label := range a.Labels {
			if i, ok := catPosition[label]; ok {
				cats[i].Count++
			} else {
				catPosition[label] = len(cats)
				cats = append(cats, CategoryBucket{Label: label, Count: 1})
			}
		}
	}

	// Stable sort over discovery-ordered slices keeps ties deterministic.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Count > cats[j].Count
	})

	idx.ordered = buckets
	for _, b := range buckets {
		idx.Sources[b.Type] = append(idx.Sources[b.Type], b)
	}
	idx.Categories = cats

	return idx
}

// SourcesFor returns the buckets for one source type, presentation order.
func (x *Index) SourcesFor(t feed.SourceType) []SourceBucket {
	return x.Sources[t]
}

// AllSources returns every bucket across types, presentation order.
func (x *Index) AllSources() []SourceBucket {
	return x.ordered
}

// TopSources returns at most n buckets across all types.
func (x *Index) TopSources(n int) []SourceBucket {
	return lo.Slice(x.ordered, 0, n)
}

// TopCategories returns at most n category buckets.
func (x *Index) TopCategories(n int) []CategoryBucket {
	return lo.Slice(x.Categories, 0, n)
}

// TypeTotal returns the number of loaded articles with one type tag.
func (x *Index) TypeTotal(t feed.SourceType) int {
	return x.TypeTotals[t]
}

// SourceName looks up the display name for a (type, id) pair.
func (x *Index) SourceName(t feed.SourceType, id feed.ID) (string, bool) {
	for _, b := range x.Sources[t] {
		if b.ID == id {
			return b.Name, true
		}
	}
	return "", false
}

// CategoryCount returns the count for one label, zero when absent.
func (x *Index) CategoryCount(label string) int {
	for _, c := range x.Categories {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}
