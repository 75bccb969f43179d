package filter

import (
	"testing"
	"time"

	"github.com/abelbrown/kiosk/internal/feed"
)

func TestSortedByRatingDescending(t *testing.T) {
	articles := []feed.Article{
		{ID: "low", Rating: 10},
		{ID: "high", Rating: 95},
		{ID: "mid", Rating: 50},
	}

	result := Sorted(articles, SortRating)

	if !sameIDs(result, "high", "mid", "low") {
		t.Errorf("expected [high mid low], got %v", idsOf(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i-1].Rating < result[i].Rating {
			t.Errorf("expected non-increasing ratings at %d", i)
		}
	}
}

func TestSortedByRatingStableTies(t *testing.T) {
	articles := []feed.Article{
		{ID: "first", Rating: 50},
		{ID: "second", Rating: 50},
		{ID: "third", Rating: 50},
	}

	result := Sorted(articles, SortRating)

	if !sameIDs(result, "first", "second", "third") {
		t.Errorf("expected ties to keep load order, got %v", idsOf(result))
	}
}

func TestSortedUnratedSinkToEnd(t *testing.T) {
	articles := []feed.Article{
		{ID: "unrated"},
		{ID: "rated", Rating: 5},
	}

	result := Sorted(articles, SortRating)

	if !sameIDs(result, "rated", "unrated") {
		t.Errorf("expected [rated unrated], got %v", idsOf(result))
	}
}

func TestSortedByDateDescending(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	articles := []feed.Article{
		dated("old", now.Add(-48*time.Hour)),
		dated("new", now.Add(-time.Hour)),
		dated("mid", now.Add(-24*time.Hour)),
	}

	result := Sorted(articles, SortDate)

	if !sameIDs(result, "new", "mid", "old") {
		t.Errorf("expected [new mid old], got %v", idsOf(result))
	}
}

func TestSortedUnknownDatesLast(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	articles := []feed.Article{
		{ID: "undated"},
		dated("dated", now),
	}

	result := Sorted(articles, SortDate)

	if !sameIDs(result, "dated", "undated") {
		t.Errorf("expected unknown dates last, got %v", idsOf(result))
	}
}

func TestSortedDateUsesProcessedFallback(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	articles := []feed.Article{
		{ID: "published-older", PublishedAt: now.Add(-3 * time.Hour)},
		{ID: "processed-newer", ProcessedAt: now.Add(-time.Hour)},
	}

	result := Sorted(articles, SortDate)

	if !sameIDs(result, "processed-newer", "published-older") {
		t.Errorf("expected processed fallback to rank, got %v", idsOf(result))
	}
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	articles := []feed.Article{
		{ID: "b", Rating: 1},
		{ID: "a", Rating: 9},
	}

	Sorted(articles, SortRating)

	if !sameIDs(articles, "b", "a") {
		t.Errorf("expected input order untouched, got %v", idsOf(articles))
	}
}
