// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultPopularLimit is the number of quick-pick titles returned by Popular
// when no limit is given.
const DefaultPopularLimit = 10

// Catalog is the immutable, cleaned collection of entries.
type Catalog struct {
	entries  []Entry
	byTitle  map[string]int
	titles   *titleTrie
	source   string
	skipped  int
	loadedAt time.Time
}

// New builds a catalog from already-cleaned entries. IDs are reassigned to
// the slice order and feature strings are derived when missing.
func New(source string, entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		entries:  make([]Entry, len(entries)),
		byTitle:  make(map[string]int, len(entries)),
		titles:   newTitleTrie(),
		source:   source,
		loadedAt: time.Now(),
	}

	for i := range entries {
		e := entries[i]
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("entry %d: empty title", i)
		}
		e.ID = i
		if e.Feature == "" {
			e.Feature = buildFeature(&e)
		}
		c.entries[i] = e

		key := NormalizeTitle(e.Title)
		if _, dup := c.byTitle[key]; !dup {
			c.byTitle[key] = i
			c.titles.insert(key, i)
		}
	}

	return c, nil
}

// NormalizeTitle is the lookup key for a title: trimmed and lowercased.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Lookup resolves a title to its catalog index. Duplicate normalized titles
// resolve to the first entry in catalog order.
func (c *Catalog) Lookup(title string) (int, error) {
	key := NormalizeTitle(title)
	if key == "" {
		return -1, ErrNotFound
	}
	idx, ok := c.byTitle[key]
	if !ok {
		return -1, ErrNotFound
	}
	return idx, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the entry at index i. The returned value must not be
// modified.
func (c *Catalog) Entry(i int) *Entry {
	return &c.entries[i]
}

// Features returns the feature strings in catalog order.
func (c *Catalog) Features() []string {
	out := make([]string, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].Feature
	}
	return out
}

// RatingAt returns the rating of entry i. Unrated entries report NaN, which
// fails every rating comparison.
func (c *Catalog) RatingAt(i int) float64 {
	if !c.entries[i].Rated {
		return math.NaN()
	}
	return c.entries[i].Rating
}

// Popular returns the first n titles in catalog order as quick picks.
func (c *Catalog) Popular(n int) []string {
	if n <= 0 {
		n = DefaultPopularLimit
	}
	if n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = c.entries[i].Title
	}
	return out
}

// Source returns the identifier of the source the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Skipped returns the number of source rows dropped for having no title.
func (c *Catalog) Skipped() int {
	return c.skipped
}

// LoadedAt returns when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}
