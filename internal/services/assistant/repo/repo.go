// Package repo provides reminder storage: a postgres repo bound through
// repokit and an in-process list for runs without a database
package repo

import (
	"context"
	"time"

	"pbl/internal/modkit/repokit"
	"pbl/internal/platform/store"
	"pbl/internal/services/assistant/domain"

	"github.com/google/uuid"
)

// Repo defines the repository contract for reminders
type Repo interface{ domain.ReminderStore }

// Schema is the reminders DDL. seq keeps insertion order independent of the
// clock
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS reminders (
		seq        bigserial PRIMARY KEY,
		id         text NOT NULL UNIQUE,
		owner      text NOT NULL DEFAULT '',
		task       text NOT NULL,
		time_text  text NOT NULL,
		completed  boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS reminders_owner_seq ON reminders (owner, seq)`,
}

// Migrate creates the reminders table
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	return store.EnsureSchema(ctx, db, Schema...)
}

// newID is swapped in tests
var newID = func() string { return uuid.Must(uuid.NewV7()).String() }

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) AppendReminder(ctx context.Context, owner, task, tm string) (domain.Reminder, error) {
	rem := domain.Reminder{ID: newID(), Owner: owner, Task: task, Time: tm}
	const sql = `
insert into reminders (id, owner, task, time_text, completed)
values ($1, $2, $3, $4, false)
returning created_at
`
	var at time.Time
	if err := r.q.QueryRow(ctx, sql, rem.ID, owner, task, tm).Scan(&at); err != nil {
		return domain.Reminder{}, err
	}
	rem.CreatedAt = at.UTC()
	return rem, nil
}

func (r *queries) ListReminders(ctx context.Context, owner string) ([]domain.Reminder, error) {
	const sql = `
select id, owner, task, time_text, completed, created_at
from reminders
where owner = $1
order by seq
`
	return store.Many(ctx, r.q, scanReminder, sql, owner)
}

func scanReminder(row store.Row) (domain.Reminder, error) {
	var rem domain.Reminder
	err := row.Scan(&rem.ID, &rem.Owner, &rem.Task, &rem.Time, &rem.Completed, &rem.CreatedAt)
	rem.CreatedAt = rem.CreatedAt.UTC()
	return rem, err
}

// TxStore runs every call of a bound Repo in its own transaction so begin
// hooks such as a statement timeout apply
type TxStore struct {
	db repokit.TxRunner
	b  repokit.Binder[Repo]
}

// NewTxStore binds b per transaction on db
func NewTxStore(db repokit.TxRunner, b repokit.Binder[Repo]) *TxStore {
	if db == nil || b == nil {
		panic("reminders.TxStore requires a TxRunner and a binder")
	}
	return &TxStore{db: db, b: b}
}

// AppendReminder implements domain.ReminderStore
func (s *TxStore) AppendReminder(ctx context.Context, owner, task, tm string) (out domain.Reminder, err error) {
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var e error
		out, e = repokit.MustBind(s.b, q).AppendReminder(ctx, owner, task, tm)
		return e
	})
	return out, err
}

// ListReminders implements domain.ReminderStore
func (s *TxStore) ListReminders(ctx context.Context, owner string) (out []domain.Reminder, err error) {
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var e error
		out, e = repokit.MustBind(s.b, q).ListReminders(ctx, owner)
		return e
	})
	return out, err
}
