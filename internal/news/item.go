// Package news holds the news index model: parsing, filtering, lookup and
// the adjacency rules used for article pagination.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ziadkadry99/newsfront/internal/source"
)

// ErrNotFound is returned when an id is not present in the index.
var ErrNotFound = errors.New("news item not found")

// Item is one entry of the news index.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"` // YYYY-MM-DD
	Category     string `json:"category"`
	Link         string `json:"link"`
	Image        string `json:"image"`
	Summary      string `json:"summary,omitempty"`
	MarkdownPath string `json:"markdownPath"`
}

// Index is the ordered list of items, newest first.
type Index []Item

// Parse decodes a JSON index.
func Parse(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decoding news index: %w", err)
	}
	return idx, nil
}

// Load fetches and decodes the index at path.
func Load(ctx context.Context, src source.Source, path string) (Index, error) {
	data, err := src.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading news index: %w", err)
	}
	return Parse(data)
}

// Filter returns the items whose category equals category exactly. An empty
// category returns the index unchanged.
func (idx Index) Filter(category string) Index {
	if category == "" {
		return idx
	}
	out := make(Index, 0, len(idx))
	for _, item := range idx {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Limit returns at most n leading items. n <= 0 means no limit.
func (idx Index) Limit(n int) Index {
	if n <= 0 || n >= len(idx) {
		return idx
	}
	return idx[:n]
}

// Find returns the position of the first item with the given id.
func (idx Index) Find(id string) (int, bool) {
	for i, item := range idx {
		if item.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Neighbors locates id and returns it together with its older (previous)
// and newer (next) neighbors. Missing neighbors are nil.
func (idx Index) Neighbors(id string) (current Item, prev, next *Item, err error) {
	i, ok := idx.Find(id)
	if !ok {
		return Item{}, nil, nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	if i > 0 {
		n := idx[i-1]
		next = &n
	}
	if i < len(idx)-1 {
		p := idx[i+1]
		prev = &p
	}
	return idx[i], prev, next, nil
}
