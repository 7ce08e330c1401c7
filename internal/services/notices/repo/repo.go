// Package repo provides notice storage in postgres and in process
package repo

import (
	"context"
	"errors"
	"time"

	"pbl/internal/modkit/repokit"
	"pbl/internal/platform/store"
	pstrings "pbl/internal/platform/strings"
	"pbl/internal/services/notices/domain"

	"github.com/google/uuid"
)

// Repo defines the repository contract for notices. List returns store
// order: the most recently stored notice first
type Repo interface {
	List(ctx context.Context) ([]domain.Notice, error)
	Insert(ctx context.Context, n domain.Notice) (domain.Notice, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, title, department string) (bool, error)
}

// Schema is the notices DDL
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS notices (
		seq        bigserial PRIMARY KEY,
		id         text NOT NULL UNIQUE,
		title      text NOT NULL,
		content    text NOT NULL,
		department text NOT NULL,
		priority   text NOT NULL DEFAULT 'medium',
		author     text NOT NULL DEFAULT '',
		author_id  text,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS notices_title_department ON notices (title, department)`,
}

// Migrate creates the notices table
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	return store.EnsureSchema(ctx, db, Schema...)
}

// newID is swapped in tests
var newID = func() string { return uuid.Must(uuid.NewV7()).String() }

type (
	// PG implements Repo using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context) ([]domain.Notice, error) {
	const sql = `
select id, title, content, department, priority, author, coalesce(author_id, ''), created_at
from notices
order by seq desc
`
	return store.Many(ctx, r.q, scanNotice, sql)
}

func scanNotice(row store.Row) (domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Department, &n.Priority, &n.Author, &n.AuthorID, &n.CreatedAt)
	n.CreatedAt = n.CreatedAt.UTC()
	return n, err
}

func (r *queries) Insert(ctx context.Context, n domain.Notice) (domain.Notice, error) {
	if n.ID == "" {
		n.ID = newID()
	}
	const sql = `
insert into notices (id, title, content, department, priority, author, author_id, created_at)
values ($1, $2, $3, $4, $5, $6, $7, coalesce($8, now()))
returning created_at
`
	var createdAt any
	if !n.CreatedAt.IsZero() {
		createdAt = n.CreatedAt
	}
	var at time.Time
	err := r.q.QueryRow(ctx, sql,
		n.ID, n.Title, n.Content, n.Department, n.Priority, n.Author, pstrings.SQLNull(n.AuthorID), createdAt,
	).Scan(&at)
	if err != nil {
		return domain.Notice{}, err
	}
	n.CreatedAt = at.UTC()
	return n, nil
}

func (r *queries) Delete(ctx context.Context, id string) (bool, error) {
	err := store.ExecOne(ctx, r.q, `delete from notices where id = $1`, id)
	if errors.Is(err, store.ErrNotOneRow) {
		return false, nil
	}
	return err == nil, err
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	return store.Scalar[int64](ctx, r.q, `select count(*) from notices`)
}

func (r *queries) Exists(ctx context.Context, title, department string) (bool, error) {
	return store.Scalar[bool](ctx, r.q,
		`select exists(select 1 from notices where title = $1 and department = $2)`, title, department)
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
		panic("notices.TxStore requires a TxRunner and a binder")
	}
	return &TxStore{db: db, b: b}
}

func inTx[T any](ctx context.Context, s *TxStore, fn func(Repo) (T, error)) (out T, err error) {
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var e error
		out, e = fn(repokit.MustBind(s.b, q))
		return e
	})
	return out, err
}

func (s *TxStore) List(ctx context.Context) ([]domain.Notice, error) {
	return inTx(ctx, s, func(r Repo) ([]domain.Notice, error) { return r.List(ctx) })
}

func (s *TxStore) Insert(ctx context.Context, n domain.Notice) (domain.Notice, error) {
	return inTx(ctx, s, func(r Repo) (domain.Notice, error) { return r.Insert(ctx, n) })
}

func (s *TxStore) Delete(ctx context.Context, id string) (bool, error) {
	return inTx(ctx, s, func(r Repo) (bool, error) { return r.Delete(ctx, id) })
}

func (s *TxStore) Count(ctx context.Context) (int64, error) {
	return inTx(ctx, s, func(r Repo) (int64, error) { return r.Count(ctx) })
}

func (s *TxStore) Exists(ctx context.Context, title, department string) (bool, error) {
	return inTx(ctx, s, func(r Repo) (bool, error) { return r.Exists(ctx, title, department) })
}
