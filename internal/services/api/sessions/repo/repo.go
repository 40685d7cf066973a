// Package repo provides postgres access for color sessions
package repo

import (
	"context"
	"time"

	"tsdash/internal/modkit/repokit"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/store"

	"github.com/google/uuid"
)

// Repo is the persistence surface for color sessions
type Repo interface {
	Create(ctx context.Context, id uuid.UUID) (Row, error)
	Get(ctx context.Context, id uuid.UUID) (Row, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (Row, error)
	Put(ctx context.Context, id uuid.UUID, lookup []byte) (Row, error)
}

// Row is one color_sessions row; Lookup is raw jsonb
type Row struct {
	ID        uuid.UUID
	Lookup    []byte
	UpdatedAt time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanRow(r repokit.Row) (Row, error) {
	var out Row
	err := r.Scan(&out.ID, &out.Lookup, &out.UpdatedAt)
	return out, err
}

func (r *queries) Create(ctx context.Context, id uuid.UUID) (Row, error) {
	const sql = `
insert into color_sessions (id, lookup)
values ($1, '{}'::jsonb)
returning id, lookup, updated_at
`
	out, err := store.One(ctx, r.q, scanRow, sql, id)
	return out, perr.FromPostgres(err, "create color session")
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (Row, error) {
	const sql = `select id, lookup, updated_at from color_sessions where id = $1`
	return r.one(ctx, sql, id)
}

func (r *queries) GetForUpdate(ctx context.Context, id uuid.UUID) (Row, error) {
	const sql = `select id, lookup, updated_at from color_sessions where id = $1 for update`
	return r.one(ctx, sql, id)
}

func (r *queries) Put(ctx context.Context, id uuid.UUID, lookup []byte) (Row, error) {
	const sql = `
update color_sessions
set lookup = $2::jsonb, updated_at = now()
where id = $1
returning id, lookup, updated_at
`
	return r.one(ctx, sql, id, string(lookup))
}

func (r *queries) one(ctx context.Context, sql string, args ...any) (Row, error) {
	out, err := store.One(ctx, r.q, scanRow, sql, args...)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return Row{}, perr.NotFoundf("color session %v not found", args[0])
	}
	return out, perr.FromPostgres(err, "color session")
}
