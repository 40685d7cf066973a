package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tsdash/internal/platform/testkit"
)

type recTx struct {
	execs []string
	inTx  bool
}

func (r *recTx) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	r.execs = append(r.execs, sql)
	return nil, nil
}
func (r *recTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r *recTx) QueryRow(context.Context, string, ...any) Row        { return nil }
func (r *recTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	r.inTx = true
	defer func() { r.inTx = false }()
	return fn(r)
}

func TestWithBeginHooks_RunsBeforeFn(t *testing.T) {
	inner := &recTx{}
	tx := WithBeginHooks(inner, StatementTimeout(1500*time.Millisecond), StatementTimeout(0))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "UPDATE color_sessions SET lookup = $1")
		return err
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if len(inner.execs) != 2 || inner.execs[0] != "SET LOCAL statement_timeout = 1500" {
		t.Fatalf("execs = %v", inner.execs)
	}
	if !strings.HasPrefix(inner.execs[1], "UPDATE") {
		t.Fatalf("fn ran before hooks: %v", inner.execs)
	}
}

func TestWithBeginHooks_HookErrorStopsFn(t *testing.T) {
	boom := errors.New("boom")
	inner := &recTx{}
	tx := WithBeginHooks(inner, func(context.Context, Queryer) error { return boom })

	ran := false
	err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}

	// non-tx calls pass straight through
	_, _ = tx.Exec(context.Background(), "SELECT 1")
	if len(inner.execs) != 1 {
		t.Fatalf("passthrough exec missing: %v", inner.execs)
	}
}

type stubGuard struct{ err error }

func (s stubGuard) Guard(context.Context) error { return s.err }

func TestMustGuard(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), stubGuard{}) })
	testkit.MustPanic(t, func() { MustGuard(context.Background(), stubGuard{err: errors.New("pg down")}) })
}

func TestMustBind(t *testing.T) {
	b := BindFunc[string](func(Queryer) string { return "bound" })
	if got := MustBind[string](b, &recTx{}); got != "bound" {
		t.Fatalf("MustBind = %q", got)
	}
	testkit.MustPanic(t, func() { MustBind[string](b, nil) })
}
