package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventZeroResult EventType = "zero_result"
	EventLoad       EventType = "load"
)

// SearchEvent describes one menu search.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
	Strategy  string    `json:"strategy"`
	SubKeys   int       `json:"sub_keys"`
	Matches   int       `json:"matches"`
	Total     int       `json:"total"`
	LatencyUs int64     `json:"latency_us"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// LoadEvent is emitted once after the records are indexed.
type LoadEvent struct {
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Terms     int       `json:"terms"`
	LatencyMs int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}
