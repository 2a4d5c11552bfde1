// Package parser turns a raw search key and a strategy name into a query
// plan for the executor.
package parser

import (
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/tokenizer"
)

// Strategy selects how the posting sets of the sub-keys are combined.
type Strategy int

const (
	// StrategyUnknown matches nothing.
	StrategyUnknown Strategy = iota
	// StrategyAny matches records containing at least one sub-key.
	StrategyAny
	// StrategyAll matches records containing every sub-key.
	StrategyAll
	// StrategyNone matches records containing no sub-key.
	StrategyNone
)

var strategyNames = map[string]Strategy{
	"ANY":  StrategyAny,
	"ALL":  StrategyAll,
	"NONE": StrategyNone,
}

// ParseStrategy maps the literal names ANY, ALL and NONE to their strategy.
// Matching is case-sensitive; anything else is StrategyUnknown.
func ParseStrategy(name string) Strategy {
	if s, ok := strategyNames[name]; ok {
		return s
	}
	return StrategyUnknown
}

func (s Strategy) String() string {
	switch s {
	case StrategyAny:
		return "ANY"
	case StrategyAll:
		return "ALL"
	case StrategyNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

type QueryPlan struct {
	SubKeys  []string
	Strategy Strategy
	RawKey   string
}

// Parse splits key into sub-keys on single spaces. Sub-keys are neither
// trimmed nor deduplicated.
func Parse(key string, strategy string) *QueryPlan {
	return &QueryPlan{
		SubKeys:  tokenizer.Split(key),
		Strategy: ParseStrategy(strategy),
		RawKey:   key,
	}
}
