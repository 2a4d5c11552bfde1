// Package executor resolves query plans against an inverted index using the
// ANY, ALL and NONE set-combination strategies.
package executor

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/parser"
)

// PostingSource is the read side of an inverted index.
type PostingSource interface {
	Search(term string) index.PostingList
	DocCount() int
}

type Executor struct {
	source PostingSource
	logger *slog.Logger
}

func New(source PostingSource) *Executor {
	return &Executor{
		source: source,
		logger: slog.Default().With("component", "query-executor"),
	}
}

// Execute returns the positions of the matching records in ascending order.
// An unknown strategy matches nothing.
func (e *Executor) Execute(plan *parser.QueryPlan) []int {
	postingsPerKey := make([]index.PostingList, 0, len(plan.SubKeys))
	for _, key := range plan.SubKeys {
		postingsPerKey = append(postingsPerKey, e.source.Search(key))
	}

	var matches []int
	switch plan.Strategy {
	case parser.StrategyAny:
		matches = e.collect(unionPostings(postingsPerKey), true)
	case parser.StrategyAll:
		matches = e.collect(intersectPostings(postingsPerKey), true)
	case parser.StrategyNone:
		matches = e.collect(unionPostings(postingsPerKey), false)
	default:
		matches = []int{}
	}
	e.logger.Debug("query executed",
		"key", plan.RawKey,
		"strategy", plan.Strategy.String(),
		"sub_keys", len(plan.SubKeys),
		"matches", len(matches),
	)
	return matches
}

// collect walks every position in record order and keeps those whose
// membership in set equals member.
func (e *Executor) collect(set map[int]struct{}, member bool) []int {
	result := make([]int, 0)
	for pos := 0; pos < e.source.DocCount(); pos++ {
		if _, ok := set[pos]; ok == member {
			result = append(result, pos)
		}
	}
	return result
}

// intersectPostings reduces the lists pairwise in the given order, seeded
// with the first list. No lists means no candidates.
func intersectPostings(postingsPerKey []index.PostingList) map[int]struct{} {
	candidates := make(map[int]struct{})
	if len(postingsPerKey) == 0 {
		return candidates
	}
	for _, pos := range postingsPerKey[0] {
		candidates[pos] = struct{}{}
	}
	for _, postings := range postingsPerKey[1:] {
		if len(candidates) == 0 {
			break
		}
		for pos := range candidates {
			if !postings.Contains(pos) {
				delete(candidates, pos)
			}
		}
	}
	return candidates
}

func unionPostings(postingsPerKey []index.PostingList) map[int]struct{} {
	result := make(map[int]struct{})
	for _, postings := range postingsPerKey {
		for _, pos := range postings {
			result[pos] = struct{}{}
		}
	}
	return result
}
