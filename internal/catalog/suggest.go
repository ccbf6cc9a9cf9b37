// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultSuggestLimit caps Suggest results when no limit is given.
const DefaultSuggestLimit = 10

// Suggestion is a title matched by prefix.
type Suggestion struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// trieNode is one rune step in the title trie.
type trieNode struct {
	children map[rune]*trieNode
	index    int // catalog index of the first entry with this title, -1 if none
}

// titleTrie is a prefix tree over normalized titles. It is built once while
// the catalog is constructed and only read afterwards, so it needs no lock.
type titleTrie struct {
	root *trieNode
	size int
}

func newTitleTrie() *titleTrie {
	return &titleTrie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode), index: -1}
}

// insert adds key pointing at catalog index idx. The first insert of a key
// wins, matching Lookup.
func (t *titleTrie) insert(key string, idx int) {
	node := t.root
	for _, ch := range key {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	if node.index == -1 {
		node.index = idx
		t.size++
	}
}

// withPrefix returns the catalog indexes of every title under prefix, in
// catalog order.
func (t *titleTrie) withPrefix(prefix string) []int {
	node := t.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var out []int
	collect(node, &out)
	sort.Ints(out)
	return out
}

func collect(node *trieNode, out *[]int) {
	if node.index >= 0 {
		*out = append(*out, node.index)
	}
	for _, child := range node.children {
		collect(child, out)
	}
}

// Suggest returns up to limit titles starting with prefix, in catalog order.
// Matching is case-insensitive and ignores leading whitespace. An empty
// prefix returns nothing.
func (c *Catalog) Suggest(prefix string, limit int) []Suggestion {
	key := strings.ToLower(strings.TrimLeftFunc(prefix, unicode.IsSpace))
	if strings.TrimSpace(key) == "" {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	ids := c.titles.withPrefix(key)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]Suggestion, len(ids))
	for i, id := range ids {
		out[i] = Suggestion{ID: id, Title: c.entries[id].Title}
	}
	return out
}
