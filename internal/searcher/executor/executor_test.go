package executor

import (
	"reflect"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/parser"
)

var people = []string{
	"Mary Smith mary@x.com",
	"John Smith john@x.com",
	"Mary Jones mary2@x.com",
}

func newExecutor(lines []string) *Executor {
	docs := make([][]string, len(lines))
	for i, line := range lines {
		docs[i] = tokenizer.Split(line)
	}
	return New(index.Build(docs))
}

func TestExecute(t *testing.T) {
	exec := newExecutor(people)
	tests := []struct {
		name     string
		key      string
		strategy string
		want     []int
	}{
		{"any single", "smith", "ANY", []int{0, 1}},
		{"any case-insensitive", "SMITH", "ANY", []int{0, 1}},
		{"any multiple", "jones john", "ANY", []int{1, 2}},
		{"any absent", "zzz", "ANY", []int{}},
		{"any partly absent", "zzz jones", "ANY", []int{2}},
		{"all pair", "mary smith", "ALL", []int{0}},
		{"all single", "mary", "ALL", []int{0, 2}},
		{"all absent sub-key", "mary zzz", "ALL", []int{}},
		{"all repeated sub-key", "smith smith", "ALL", []int{0, 1}},
		{"all disjoint", "john jones", "ALL", []int{}},
		{"none single", "smith", "NONE", []int{2}},
		{"none multiple", "john jones", "NONE", []int{0}},
		{"none absent", "zzz", "NONE", []int{0, 1, 2}},
		{"unknown strategy", "smith", "BOGUS", []int{}},
		{"lowercase strategy", "smith", "any", []int{}},
		{"empty key any", "", "ANY", []int{}},
		{"empty key none", "", "NONE", []int{0, 1, 2}},
		{"empty key all", "", "ALL", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exec.Execute(parser.Parse(tt.key, tt.strategy))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Execute(%q, %s) = %v, want %v", tt.key, tt.strategy, got, tt.want)
			}
		})
	}
}

func TestExecuteNoSubKeys(t *testing.T) {
	exec := newExecutor(people)
	plan := &parser.QueryPlan{Strategy: parser.StrategyAll}
	if got := exec.Execute(plan); len(got) != 0 {
		t.Errorf("ALL with no sub-keys = %v, want empty", got)
	}
	plan.Strategy = parser.StrategyNone
	if got := exec.Execute(plan); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("NONE with no sub-keys = %v, want all", got)
	}
}

func TestNoneIsComplementOfAny(t *testing.T) {
	lines := []string{
		"Dwight Joseph djo@gmail.com",
		"Rene Webb webb@gmail.com",
		"Katie Jacobs",
		"Erick Harrington harrington@gmail.com",
		"Myrtle Medina",
		"Erick Burgess",
	}
	exec := newExecutor(lines)
	for _, key := range []string{"erick", "katie webb", "nobody", "ERICK burgess", ""} {
		anyMatches := exec.Execute(parser.Parse(key, "ANY"))
		noneMatches := exec.Execute(parser.Parse(key, "NONE"))
		if len(anyMatches)+len(noneMatches) != len(lines) {
			t.Errorf("key %q: ANY %v and NONE %v do not partition %d records", key, anyMatches, noneMatches, len(lines))
		}
		seen := make(map[int]bool)
		for _, pos := range anyMatches {
			seen[pos] = true
		}
		for _, pos := range noneMatches {
			if seen[pos] {
				t.Errorf("key %q: position %d in both ANY and NONE", key, pos)
			}
		}
	}
}

func TestAllMatchesSupersets(t *testing.T) {
	lines := []string{
		"a b c",
		"a c",
		"b c d",
		"c",
		"A B",
	}
	exec := newExecutor(lines)
	got := exec.Execute(parser.Parse("b a", "ALL"))
	want := []int{0, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ALL(b a) = %v, want %v", got, want)
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	exec := newExecutor(people)
	plan := parser.Parse("mary john", "ANY")
	first := exec.Execute(plan)
	for i := 0; i < 5; i++ {
		if got := exec.Execute(plan); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}
