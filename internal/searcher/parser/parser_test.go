package parser

import (
	"reflect"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"ANY", StrategyAny},
		{"ALL", StrategyAll},
		{"NONE", StrategyNone},
		{"any", StrategyUnknown},
		{"BOGUS", StrategyUnknown},
		{"", StrategyUnknown},
		{" ANY", StrategyUnknown},
	}
	for _, tt := range tests {
		if got := ParseStrategy(tt.in); got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrategyStringRoundTrip(t *testing.T) {
	for _, s := range []Strategy{StrategyAny, StrategyAll, StrategyNone} {
		if got := ParseStrategy(s.String()); got != s {
			t.Errorf("ParseStrategy(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if StrategyUnknown.String() != "UNKNOWN" {
		t.Errorf("StrategyUnknown.String() = %q", StrategyUnknown.String())
	}
}

func TestParse(t *testing.T) {
	plan := Parse("Mary  Smith", "ALL")
	if plan.Strategy != StrategyAll {
		t.Errorf("Strategy = %v, want ALL", plan.Strategy)
	}
	want := []string{"Mary", "", "Smith"}
	if !reflect.DeepEqual(plan.SubKeys, want) {
		t.Errorf("SubKeys = %q, want %q", plan.SubKeys, want)
	}
	if plan.RawKey != "Mary  Smith" {
		t.Errorf("RawKey = %q", plan.RawKey)
	}
}

func TestParseKeepsDuplicateSubKeys(t *testing.T) {
	plan := Parse("smith smith", "ANY")
	if len(plan.SubKeys) != 2 {
		t.Errorf("SubKeys = %q, want two entries", plan.SubKeys)
	}
}
