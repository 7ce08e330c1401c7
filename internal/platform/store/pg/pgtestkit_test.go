package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// openTestDB opens dsn with a pool of at most maxConns and closes it when
// the test ends
func openTestDB(t *testing.T, dsn string, maxConns int32) *PG {
	t.Helper()
	p, err := Open(context.Background(), Config{URL: dsn, AppName: "pbl-test"}, nil, func(c *pgxpool.Config) {
		c.MaxConns = maxConns
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

// pinnedConn holds one session for the whole test, for temp tables and
// SET statements that must see each other
func pinnedConn(ctx context.Context, t *testing.T, p *PG) *pgxpool.Conn {
	t.Helper()
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
