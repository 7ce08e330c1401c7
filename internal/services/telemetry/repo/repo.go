// Package repo stores command events in ClickHouse
package repo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"pbl/internal/platform/store"
	"pbl/internal/services/telemetry/domain"
)

// DefaultTable is used when CH_TABLE is unset
const DefaultTable = "assistant_events"

var tableRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CH implements domain.Store on ClickHouse
type CH struct {
	ch    store.Clickhouse
	table string
}

// NewCH returns the ClickHouse event store writing to table. It panics on a
// nil connection or a table name that is not a plain identifier
func NewCH(ch store.Clickhouse, table string) *CH {
	if ch == nil {
		panic("telemetry.NewCH requires a clickhouse connection")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableRE.MatchString(table) {
		panic(fmt.Sprintf("telemetry: bad table name %q", table))
	}
	return &CH{ch: ch, table: table}
}

// Table returns the events table name
func (r *CH) Table() string { return r.table }

// Migrate creates the events table
func (r *CH) Migrate(ctx context.Context) error {
	return r.ch.Exec(ctx, `
CREATE TABLE IF NOT EXISTS `+r.table+` (
	at         DateTime64(3, 'UTC'),
	intent     LowCardinality(String),
	department LowCardinality(String),
	channel    LowCardinality(String),
	latency_ms UInt32,
	failed     UInt8
) ENGINE = MergeTree
PARTITION BY toYYYYMM(at)
ORDER BY (intent, at)`)
}

// WriteBatch implements domain.Sink
func (r *CH) WriteBatch(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, len(evs))
	for i, ev := range evs {
		var failed uint8
		if ev.Failed {
			failed = 1
		}
		rows[i] = []any{ev.At.UTC(), ev.Intent, ev.Department, ev.Channel, millis(ev.Latency), failed}
	}
	return r.ch.Insert(ctx, r.table, rows)
}

func millis(d time.Duration) uint32 {
	ms := d.Milliseconds()
	switch {
	case ms < 0:
		return 0
	case ms > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(ms)
}

// Summary implements domain.Reader
func (r *CH) Summary(ctx context.Context, since time.Time) ([]domain.IntentStat, error) {
	rows, err := r.ch.Query(ctx, `
SELECT intent, toUInt64(count()) AS n, toUInt64(sum(failed)), avg(latency_ms)
FROM `+r.table+`
WHERE at >= ?
GROUP BY intent
ORDER BY n DESC, intent`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.IntentStat{}
	for rows.Next() {
		var s domain.IntentStat
		if err := rows.Scan(&s.Intent, &s.Count, &s.Failed, &s.AvgMillis); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
