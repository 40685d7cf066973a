// Package schema creates the tables tsdash reads and writes
// every statement is idempotent
package schema

import (
	"context"
	"fmt"

	"tsdash/internal/platform/store"
)

// PG holds the catalog and the color sessions
var PG = []string{
	`create table if not exists series (
  external_id text primary key,
  name text not null default '',
  unit text not null default '',
  description text not null default '',
  is_string boolean not null default false,
  created_at timestamptz not null default now()
)`,
	`create index if not exists series_name_idx on series (name, external_id) where not is_string`,
	`create table if not exists color_sessions (
  id uuid primary key,
  lookup jsonb not null default '{}'::jsonb,
  updated_at timestamptz not null default now()
)`,
}

// Datapoints is the ClickHouse table name
const Datapoints = "datapoints"

// CH holds the datapoints, one row per sample
// rows sharing (external_id, ts) collapse to the last insert, so readers select with final
var CH = []string{
	`create table if not exists ` + Datapoints + ` (
  external_id LowCardinality(String),
  ts DateTime64(3, 'UTC'),
  value Float64
) engine = ReplacingMergeTree
order by (external_id, ts)`,
}

// ApplyPG runs PG in one transaction
func ApplyPG(ctx context.Context, db store.TxRunner) error {
	return db.Tx(ctx, func(q store.RowQuerier) error {
		for i, s := range PG {
			if _, err := q.Exec(ctx, s); err != nil {
				return fmt.Errorf("pg schema step %d: %w", i, err)
			}
		}
		return nil
	})
}

// ApplyCH runs CH statements in order
func ApplyCH(ctx context.Context, ch store.Clickhouse) error {
	for i, s := range CH {
		if err := ch.Exec(ctx, s); err != nil {
			return fmt.Errorf("ch schema step %d: %w", i, err)
		}
	}
	return nil
}
