// Package feed defines the article data model and the decoding of the feed
// document published by the curation backend. All defaulting and
// normalization happens here, at the decode boundary: downstream packages
// never see a missing source type, a numeric identifier, or an alias tag.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SourceType identifies the kind of feed an article came from.
type SourceType string

// Canonical source type tags. The set is open: unknown tags decode
// unchanged, these are just the ones the sidebar knows how to present.
const (
	SourceRSS        SourceType = "rss"
	SourceYouTube    SourceType = "youtube"
	SourceNewsletter SourceType = "newsletter"
	SourceNitter     SourceType = "nitter"
)

// KnownTypes returns the canonical tags in display order.
func KnownTypes() []SourceType {
	return []SourceType{SourceRSS, SourceYouTube, SourceNewsletter, SourceNitter}
}

// CanonicalType maps a raw source_type value onto the canonical tag set.
// Generator versions disagreed on some tags ("blog" vs "newsletter",
// "twitter" vs "nitter"); both aliases fold into one canonical tag so a
// type filter can never split a source across two buckets. Absent defaults
// to rss.
func CanonicalType(raw string) SourceType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SourceRSS
	case "blog":
		return SourceNewsletter
	case "twitter":
		return SourceNitter
	default:
		return SourceType(strings.ToLower(strings.TrimSpace(raw)))
	}
}

// Label returns the sidebar display name for a source type.
func (t SourceType) Label() string {
	switch t {
	case SourceRSS:
		return "RSS"
	case SourceYouTube:
		return "YouTube"
	case SourceNewsletter:
		return "Newsletters"
	case SourceNitter:
		return "Nitter"
	default:
		return string(t)
	}
}

// ID is an article or source identifier in canonical string form.
// Generator versions are inconsistent about identifier types (some emit
// numbers, some strings); both decode to the same canonical value, so a
// read-state lookup can never miss on a string/number mismatch.
type ID string

// UnmarshalJSON accepts a JSON string or number. Null decodes to the empty
// ID; any other shape is a malformed document.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode identifier: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier is neither string nor number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Article is a single curated item from the feed document. Immutable once
// loaded; the slice order of the document is the tiebreak order for every
// sort downstream.
type Article struct {
	ID          ID
	Title       string
	Summary     string
	SourceType  SourceType
	SourceID    ID
	SourceName  string
	PublishedAt time.Time
	ProcessedAt time.Time
	URL         string
	Rating      int
	Labels      []string
	Ideas       []string
}

// PlaceholderURL stands in for a missing destination link.
const PlaceholderURL = "#"

// articleWire is the raw document shape. Lenient types absorb the optional
// fields so one malformed rating or date cannot fail the whole load.
type articleWire struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	SourceType  string     `json:"source_type"`
	SourceID    ID         `json:"source_id"`
	SourceName  string     `json:"source_name"`
	PublishedAt wireTime   `json:"published_at"`
	ProcessedAt wireTime   `json:"processed_at"`
	OriginalURL string     `json:"original_url"`
	URL         string     `json:"url"`
	Rating      wireScore  `json:"rating"`
	Labels      stringList `json:"labels"`
	Ideas       stringList `json:"ideas"`
}

// UnmarshalJSON decodes and normalizes in one step.
func (a *Article) UnmarshalJSON(data []byte) error {
	var w articleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	url := w.OriginalURL
	if url == "" {
		url = w.URL
	}
	if url == "" {
		url = PlaceholderURL
	}

	name := w.SourceName
	if name == "" {
		name = "Unknown"
	}

	*a = Article{
		ID:          w.ID,
		Title:       w.Title,
		Summary:     w.Summary,
		SourceType:  CanonicalType(w.SourceType),
		SourceID:    w.SourceID,
		SourceName:  name,
		PublishedAt: w.PublishedAt.t,
		ProcessedAt: w.ProcessedAt.t,
		URL:         url,
		Rating:      int(w.Rating),
		Labels:      w.Labels,
		Ideas:       w.Ideas,
	}
	return nil
}

// EffectiveDate returns the date used for temporal filtering and date sort:
// publish time preferred, processing time as fallback, zero when neither
// parsed. Zero-dated articles fail every temporal filter and sort after all
// dated ones.
func (a Article) EffectiveDate() time.Time {
	if !a.PublishedAt.IsZero() {
		return a.PublishedAt
	}
	return a.ProcessedAt
}

// HasLink reports whether the article carries a real destination.
func (a Article) HasLink() bool {
	return a.URL != "" && a.URL != PlaceholderURL
}

// wireTime decodes the date layouts generator versions have emitted.
// Absent, null, or unparseable values all yield the zero time: a bad date
// defaults, it never fails the document.
type wireTime struct {
	t time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	w.t = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Epoch seconds show up in one early generator version.
		var sec int64
		if json.Unmarshal(data, &sec) == nil && sec > 0 {
			w.t = time.Unix(sec, 0)
		}
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			w.t = t
			return nil
		}
	}
	return nil
}

// wireScore is a lenient integer: numbers round, numeric strings parse,
// anything else is zero.
type wireScore int

func (s *wireScore) UnmarshalJSON(data []byte) error {
	*s = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var str string
		if json.Unmarshal(data, &str) != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*s = wireScore(math.Round(f))
		}
		return nil
	}
	var f float64
	if json.Unmarshal(data, &f) == nil {
		*s = wireScore(math.Round(f))
	}
	return nil
}

// stringList tolerates null and skips non-string elements instead of
// failing the document.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var vals []any
	if json.Unmarshal(data, &vals) != nil {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// htmlTagRe matches HTML tags.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// whitespaceRe matches runs of whitespace.
var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanSummary strips HTML tags, unescapes entities, collapses whitespace,
// and caps the result at maxChars runes for single-line display.
func CleanSummary(s string, maxChars int) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return Truncate(s, maxChars)
}

// Truncate shortens a string to maxLen runes, adding "..." if truncated.
// Rune-aware to avoid breaking UTF-8 sequences.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
