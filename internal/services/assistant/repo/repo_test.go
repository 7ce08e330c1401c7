package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pbl/internal/modkit/repokit"
	"pbl/internal/platform/store"
	ptime "pbl/internal/platform/time"
	"pbl/internal/platform/testkit"
	"pbl/internal/services/assistant/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d dest for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = vals[i].(string)
		case *bool:
			*p = vals[i].(bool)
		case *time.Time:
			*p = vals[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported %T", d)
		}
	}
	return nil
}

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

type rows struct {
	data [][]any
	i    int
}

func (r *rows) Next() bool             { r.i++; return r.i <= len(r.data) }
func (r *rows) Scan(dest ...any) error { return assign(dest, r.data[r.i-1]) }
func (r *rows) Err() error             { return nil }
func (r *rows) Close()                 {}
func (r *rows) Columns() []string      { return nil }

type tag struct{}

func (tag) String() string      { return "" }
func (tag) RowsAffected() int64 { return 1 }

// db records statements and answers from canned data
type db struct {
	sql     []string
	args    [][]any
	rowErr  error
	at      time.Time
	listing [][]any
	txs     int
}

func (d *db) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	d.sql = append(d.sql, strings.TrimSpace(sql))
	return tag{}, nil
}

func (d *db) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	d.sql = append(d.sql, strings.TrimSpace(sql))
	d.args = append(d.args, args)
	return &rows{data: d.listing}, nil
}

func (d *db) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	d.sql = append(d.sql, strings.TrimSpace(sql))
	d.args = append(d.args, args)
	return row{vals: []any{d.at}, err: d.rowErr}
}

func (d *db) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	d.txs++
	return fn(d)
}

func TestPG_AppendReminder(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newID, func() string { return "r-1" })
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))
	d := &db{at: at}

	rem, err := NewPG().Bind(d).AppendReminder(context.Background(), "u1", "study session", "10am")
	require.NoError(t, err)
	assert.Equal(t, domain.Reminder{ID: "r-1", Owner: "u1", Task: "study session", Time: "10am", CreatedAt: at.UTC()}, rem)
	assert.False(t, rem.Completed)
	require.Len(t, d.args, 1)
	assert.Equal(t, []any{"r-1", "u1", "study session", "10am"}, d.args[0])
	assert.Contains(t, d.sql[0], "insert into reminders")
}

func TestPG_AppendReminderError(t *testing.T) {
	d := &db{rowErr: errors.New("conn reset")}
	_, err := NewPG().Bind(d).AppendReminder(context.Background(), "", "x", "1pm")
	require.Error(t, err)
}

func TestPG_ListRemindersKeepsOrder(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	d := &db{listing: [][]any{
		{"b", "u1", "second by id", "9am", false, at},
		{"a", "u1", "first by id", "8am", false, at},
	}}
	got, err := NewPG().Bind(d).ListReminders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Contains(t, d.sql[0], "order by seq")
	assert.Equal(t, []any{"u1"}, d.args[0])
}

func TestTxStore_RunsHooksPerCall(t *testing.T) {
	d := &db{at: time.Now()}
	s := NewTxStore(repokit.WithBeginHooks(d, repokit.StatementTimeout(2*time.Second)), NewPG())

	_, err := s.AppendReminder(context.Background(), "u1", "task", "1pm")
	require.NoError(t, err)
	_, err = s.ListReminders(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, d.txs)
	assert.Equal(t, "SET LOCAL statement_timeout = 2000", d.sql[0])
	assert.Equal(t, "SET LOCAL statement_timeout = 2000", d.sql[2])
}

func TestMigrate(t *testing.T) {
	d := &db{}
	require.NoError(t, Migrate(context.Background(), d))
	require.Len(t, d.sql, len(Schema))
	assert.Contains(t, d.sql[0], "CREATE TABLE IF NOT EXISTS reminders")
	assert.Equal(t, 1, d.txs)
}

func TestMemory_AppendOnlyInOrder(t *testing.T) {
	clock := ptime.Fixed(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	m := NewMemory(clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.AppendReminder(ctx, "u1", fmt.Sprintf("task %d", i), "10am")
		require.NoError(t, err)
	}
	_, _ = m.AppendReminder(ctx, "u1", "task 0", "10am") // duplicates are kept
	_, _ = m.AppendReminder(ctx, "", "anon", "1pm")

	mine, err := m.ListReminders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 4)
	for i, want := range []string{"task 0", "task 1", "task 2", "task 0"} {
		assert.Equal(t, want, mine[i].Task)
		assert.False(t, mine[i].Completed)
		assert.Equal(t, clock.Now(), mine[i].CreatedAt)
	}
	assert.NotEqual(t, mine[0].ID, mine[3].ID)
	assert.Equal(t, 5, m.Len())

	none, err := m.ListReminders(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemory_ConcurrentAppends(t *testing.T) {
	m := NewMemory(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AppendReminder(context.Background(), "u", "t", "1pm")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}

func TestMemory_ConcurrentAppendsStampInListOrder(t *testing.T) {
	testkit.Serial(t)
	var seq atomic.Int64
	testkit.Swap(t, &newID, func() string { return fmt.Sprintf("r-%04d", seq.Add(1)) })
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	m := NewMemory(ptime.ClockFunc(func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * time.Millisecond)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AppendReminder(context.Background(), "u", "t", "1pm")
		}()
	}
	wg.Wait()

	got, err := m.ListReminders(context.Background(), "u")
	require.NoError(t, err)
	require.Len(t, got, 200)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID, "id out of order at %d", i)
		assert.True(t, got[i-1].CreatedAt.Before(got[i].CreatedAt), "created_at out of order at %d", i)
	}
}
