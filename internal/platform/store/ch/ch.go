// Package ch wraps the clickhouse-go native client used for datapoint reads and seeding
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the native connection
type Config struct {
	URL         string
	Role        string
	Tag         string
	DialTimeout time.Duration
	// Debugf receives driver debug lines when set
	Debugf func(format string, v ...any)
}

// CH is a thin client over driver.Conn
type CH struct {
	Conn driver.Conn
}

var openConn = clickhouse.Open

// Open parses the DSN, stamps client info and dials
// the connection is lazy; callers Ping to confirm reachability
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("clickhouse: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.Debugf != nil {
		opts.Debug = true
		opts.Debugf = cfg.Debugf
	}
	conn, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: open: %w", err)
	}
	return &CH{Conn: conn}, nil
}

// Ping checks the server
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.Conn == nil {
		return errors.New("clickhouse: not opened")
	}
	return c.Conn.Ping(ctx)
}

// Exec runs a statement with no result set (DDL, mutations)
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	if c == nil || c.Conn == nil {
		return errors.New("clickhouse: not opened")
	}
	return c.Conn.Exec(ctx, sql, args...)
}

// Query runs a select
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	if c == nil || c.Conn == nil {
		return nil, errors.New("clickhouse: not opened")
	}
	return c.Conn.Query(ctx, sql, args...)
}

// Insert appends rows to table through one native batch
// each row must match the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if c == nil || c.Conn == nil {
		return errors.New("clickhouse: not opened")
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.Conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("clickhouse: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("clickhouse: append %s row %d: %w", table, i, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("clickhouse: send %s: %w", table, err)
	}
	return nil
}

// Close closes the connection
func (c *CH) Close() error {
	if c == nil || c.Conn == nil {
		return nil
	}
	return c.Conn.Close()
}
