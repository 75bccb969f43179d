package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document is one decoded feed document: the complete article collection
// the client works with until the next reload.
type Document struct {
	Items       []Article
	GeneratedAt time.Time
	TotalItems  int
}

// documentWire tolerates both metadata spellings the generator has used.
type documentWire struct {
	Items       []Article `json:"items"`
	UpdatedAt   wireTime  `json:"updated_at"`
	GeneratedAt wireTime  `json:"generated_at"`
	TotalItems  wireScore `json:"total_items"`
}

// UnmarshalJSON decodes the document envelope. A missing items key is an
// empty feed, not an error; Items is never nil after decode.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode feed document: %w", err)
	}
	d.Items = w.Items
	if d.Items == nil {
		d.Items = []Article{}
	}
	d.GeneratedAt = w.UpdatedAt.t
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = w.GeneratedAt.t
	}
	d.TotalItems = int(w.TotalItems)
	if d.TotalItems == 0 {
		d.TotalItems = len(d.Items)
	}
	return nil
}

// ParseDocument decodes a raw feed document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
