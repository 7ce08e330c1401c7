package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"pbl/internal/platform/store"
	"pbl/internal/platform/testkit"
)

type recTx struct {
	execs []string
	fail  string
}

type recTag struct{}

func (recTag) String() string      { return "SET" }
func (recTag) RowsAffected() int64 { return 0 }

func (r *recTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.execs = append(r.execs, sql)
	if sql == r.fail {
		return nil, errors.New("rejected")
	}
	return recTag{}, nil
}
func (r *recTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (r *recTx) QueryRow(context.Context, string, ...any) store.Row        { return nil }
func (r *recTx) Tx(_ context.Context, fn func(Queryer) error) error        { return fn(r) }

func TestWithBeginHooks_RunsBeforeFn(t *testing.T) {
	inner := &recTx{}
	tx := WithBeginHooks(inner, StatementTimeout(1500*time.Millisecond))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "INSERT")
		return err
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if len(inner.execs) != 2 || inner.execs[0] != "SET LOCAL statement_timeout = 1500" || inner.execs[1] != "INSERT" {
		t.Fatalf("execs = %v", inner.execs)
	}
}

func TestWithBeginHooks_HookErrorStops(t *testing.T) {
	inner := &recTx{fail: "SET LOCAL statement_timeout = 10"}
	tx := WithBeginHooks(inner, StatementTimeout(10*time.Millisecond))
	called := false
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if err == nil || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestWithBeginHooks_NoHooksIsIdentity(t *testing.T) {
	inner := &recTx{}
	if WithBeginHooks(inner) != TxRunner(inner) {
		t.Fatalf("expected the inner runner back")
	}
}

func TestMustBind(t *testing.T) {
	b := BindFunc[int](func(Queryer) int { return 7 })
	if MustBind[int](b, &recTx{}) != 7 {
		t.Fatalf("bind")
	}
	testkit.MustPanic(t, func() { MustBind[int](b, nil) })
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	var hadDeadline bool
	MustGuard(context.Background(), guardFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}))
	if !hadDeadline {
		t.Fatalf("MustGuard should add a deadline")
	}
	testkit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg down") }))
	})
}
