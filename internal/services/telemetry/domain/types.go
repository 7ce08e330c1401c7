// Package domain holds the command telemetry types and ports
package domain

import (
	"context"
	"time"
)

// Event is one dispatched command as stored in the events table
type Event struct {
	At         time.Time
	Intent     string
	Department string
	Channel    string
	Latency    time.Duration
	Failed     bool
}

// IntentStat is one row of the usage summary
type IntentStat struct {
	Intent    string  `json:"intent" example:"reminder"`
	Count     uint64  `json:"count"`
	Failed    uint64  `json:"failed"`
	AvgMillis float64 `json:"avg_latency_ms"`
}

// Summary is command usage since a point in time, busiest intent first
type Summary struct {
	Since   time.Time    `json:"since"`
	Source  string       `json:"source" example:"clickhouse"`
	Intents []IntentStat `json:"intents"`
}

// Sink persists batches of events
type Sink interface {
	WriteBatch(ctx context.Context, evs []Event) error
}

// Reader aggregates stored events
type Reader interface {
	Summary(ctx context.Context, since time.Time) ([]IntentStat, error)
}

// Store is a sink that can also be read back
type Store interface {
	Sink
	Reader
}
