// Package repo provides postgres access for the series catalog
package repo

import (
	"context"

	"tsdash/internal/modkit/repokit"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/store"
)

// Repo is the persistence surface for the catalog
type Repo interface {
	ListNumeric(ctx context.Context, limit int) ([]Row, error)
	ByIDs(ctx context.Context, ids []string) ([]Row, error)
	Upsert(ctx context.Context, r Row) error
}

// Row is one series row
type Row struct {
	ExternalID  string
	Name        string
	Unit        string
	Description string
	IsString    bool
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

const cols = `external_id, name, unit, description, is_string`

func scanRow(rs repokit.Row) (Row, error) {
	var r Row
	err := rs.Scan(&r.ExternalID, &r.Name, &r.Unit, &r.Description, &r.IsString)
	return r, err
}

func (r *queries) ListNumeric(ctx context.Context, limit int) ([]Row, error) {
	// empty names sort first under any collation
	const sql = `
select ` + cols + `
from series
where not is_string
order by name asc, external_id asc
limit $1
`
	out, err := store.Many(ctx, r.q, scanRow, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list series")
	}
	return out, nil
}

func (r *queries) ByIDs(ctx context.Context, ids []string) ([]Row, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const sql = `
select ` + cols + `
from series
where external_id = any($1)
`
	out, err := store.Many(ctx, r.q, scanRow, sql, ids)
	if err != nil {
		return nil, perr.FromPostgres(err, "retrieve series")
	}
	return out, nil
}

func (r *queries) Upsert(ctx context.Context, in Row) error {
	const sql = `
insert into series (external_id, name, unit, description, is_string)
values ($1, $2, $3, $4, $5)
on conflict (external_id) do update
set name = excluded.name,
    unit = excluded.unit,
    description = excluded.description,
    is_string = excluded.is_string
`
	_, err := r.q.Exec(ctx, sql, in.ExternalID, in.Name, in.Unit, in.Description, in.IsString)
	return perr.FromPostgres(err, "upsert series")
}
