// Package index implements the build-once inverted index over people
// records. Terms are case-folded words; postings are record positions.
package index

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/tokenizer"
)

// Inverted maps a folded term to the positions of the records containing it.
// It is immutable after Build and safe for concurrent readers.
type Inverted struct {
	index    map[string]PostingList
	docCount int
}

// Build indexes docs, where docs[i] is the tokenization of record i. A term
// repeated within one record is posted once for that record.
func Build(docs [][]string) *Inverted {
	inv := &Inverted{
		index:    make(map[string]PostingList),
		docCount: len(docs),
	}
	for pos, words := range docs {
		for _, word := range words {
			term := tokenizer.Fold(word)
			postings := inv.index[term]
			// positions are visited in ascending order, so a repeat within
			// the same record is always the last entry
			if n := len(postings); n > 0 && postings[n-1] == pos {
				continue
			}
			inv.index[term] = append(postings, pos)
		}
	}
	return inv
}

// Search returns the postings for the folded form of term, or nil when the
// term does not occur. The returned list must not be modified.
func (i *Inverted) Search(term string) PostingList {
	return i.index[tokenizer.Fold(term)]
}

// DocCount returns the number of records the index was built from.
func (i *Inverted) DocCount() int {
	return i.docCount
}

// Terms returns the number of distinct terms.
func (i *Inverted) Terms() int {
	return len(i.index)
}

// snapshot lists every term with a copy of its postings, sorted by term.
func (i *Inverted) snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(i.index))
	for term, postings := range i.index {
		cp := make(PostingList, len(postings))
		copy(cp, postings)
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: cp,
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Term < entries[b].Term
	})
	return entries
}
