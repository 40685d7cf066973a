// Package repo reads datapoints from clickhouse
package repo

import (
	"context"

	"tsdash/internal/core/figure"
	"tsdash/internal/core/timewindow"
	"tsdash/internal/modkit/repokit"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/schema"
)

// Repo is the datapoint read surface
type Repo interface {
	// Aggregated buckets [start, end) into bucketSec wide avg, min and max
	Aggregated(ctx context.Context, id string, w timewindow.Window, bucketSec int64) (figure.Points, error)
	// Raw returns up to limit points inside the window plus the neighbours just outside it
	Raw(ctx context.Context, id string, w timewindow.Window, limit int) (figure.Points, error)
}

// CH reads from the datapoints table
type CH struct{ ch repokit.Clickhouse }

// NewCH binds the repo to a clickhouse seam
func NewCH(ch repokit.Clickhouse) *CH {
	if ch == nil {
		panic("plot.Repo requires clickhouse")
	}
	return &CH{ch: ch}
}

const aggSQL = `
select
  toInt64(intDiv(toUnixTimestamp64Milli(ts), toInt64(?)) * toInt64(?)) as bucket,
  avg(value), min(value), max(value)
from ` + schema.Datapoints + ` final
where external_id = ?
  and ts >= fromUnixTimestamp64Milli(toInt64(?), 'UTC')
  and ts < fromUnixTimestamp64Milli(toInt64(?), 'UTC')
group by bucket
order by bucket
`

// Aggregated implements Repo
func (r *CH) Aggregated(ctx context.Context, id string, w timewindow.Window, bucketSec int64) (figure.Points, error) {
	if bucketSec <= 0 {
		return figure.Points{}, perr.InvalidArgf("bucket width must be positive, got %d", bucketSec)
	}
	ms := bucketSec * 1000
	rows, err := r.ch.Query(ctx, aggSQL, ms, ms, id, w.Start, w.End)
	if err != nil {
		return figure.Points{}, perr.FromClickhousef(err, "aggregate datapoints for %s", id)
	}
	defer rows.Close()

	var p figure.Points
	for rows.Next() {
		var (
			ts          int64
			avg, lo, hi float64
		)
		if err := rows.Scan(&ts, &avg, &lo, &hi); err != nil {
			return figure.Points{}, perr.FromClickhousef(err, "scan datapoints for %s", id)
		}
		p.Timestamps = append(p.Timestamps, ts)
		p.Average = append(p.Average, avg)
		p.Min = append(p.Min, lo)
		p.Max = append(p.Max, hi)
	}
	if err := rows.Err(); err != nil {
		return figure.Points{}, perr.FromClickhousef(err, "read datapoints for %s", id)
	}
	return p, nil
}

const rawSQL = `
select ms, value from (
  (select toUnixTimestamp64Milli(ts) as ms, value from ` + schema.Datapoints + ` final
   where external_id = ? and ts < fromUnixTimestamp64Milli(toInt64(?), 'UTC')
   order by ts desc limit 1)
  union all
  (select toUnixTimestamp64Milli(ts) as ms, value from ` + schema.Datapoints + ` final
   where external_id = ?
     and ts >= fromUnixTimestamp64Milli(toInt64(?), 'UTC')
     and ts < fromUnixTimestamp64Milli(toInt64(?), 'UTC')
   order by ts asc limit ?)
  union all
  (select toUnixTimestamp64Milli(ts) as ms, value from ` + schema.Datapoints + ` final
   where external_id = ? and ts >= fromUnixTimestamp64Milli(toInt64(?), 'UTC')
   order by ts asc limit 1)
)
order by ms
`

// Raw implements Repo
func (r *CH) Raw(ctx context.Context, id string, w timewindow.Window, limit int) (figure.Points, error) {
	if limit <= 0 {
		return figure.Points{}, perr.InvalidArgf("raw limit must be positive, got %d", limit)
	}
	rows, err := r.ch.Query(ctx, rawSQL, id, w.Start, id, w.Start, w.End, limit, id, w.End)
	if err != nil {
		return figure.Points{}, perr.FromClickhousef(err, "raw datapoints for %s", id)
	}
	defer rows.Close()

	var p figure.Points
	for rows.Next() {
		var (
			ts int64
			v  float64
		)
		if err := rows.Scan(&ts, &v); err != nil {
			return figure.Points{}, perr.FromClickhousef(err, "scan datapoints for %s", id)
		}
		p.Timestamps = append(p.Timestamps, ts)
		p.Value = append(p.Value, v)
	}
	if err := rows.Err(); err != nil {
		return figure.Points{}, perr.FromClickhousef(err, "read datapoints for %s", id)
	}
	return p, nil
}
