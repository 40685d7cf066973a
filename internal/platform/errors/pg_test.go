package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) *pgconn.PgError { return &pgconn.PgError{Code: code} }

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeConflict},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22P02", ErrorCodeInvalidArgument},
		{"22032", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeDB},
		{"25006", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code))
		if !ok {
			t.Fatalf("expected ok for PgError code %s", c.code)
		}
		if got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, want %v", c.code, got, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("DBErrorCode should return ok=false for non-pg error")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("FromPostgres(nil) should be nil")
	}
	if FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("FromPostgresf(nil) should be nil")
	}
	if err := FromPostgres(pg("23505"), "insert session"); CodeOf(err) != ErrorCodeConflict {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if err := FromPostgresf(pgx.ErrNoRows, "session %s", "abc"); CodeOf(err) != ErrorCodeNotFound {
		t.Fatalf("no rows should map to not found, got %v", CodeOf(err))
	}
	if err := FromPostgres(stderrs.New("conn reset"), "x"); CodeOf(err) != ErrorCodeDB {
		t.Fatalf("foreign error should map to DB, got %v", CodeOf(err))
	}
	if !IsDuplicateKey(fmt.Errorf("wrapped: %w", pg("23505"))) {
		t.Fatalf("IsDuplicateKey should see through wrapping")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("q: %w", context.DeadlineExceeded), false},
		{"serialization", pg("40001"), true},
		{"deadlock", pg("40P01"), true},
		{"unique", pg("23505"), false},
		{"commit text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"other", stderrs.New("boom"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsRetryable(c.err); got != c.want {
				t.Fatalf("IsRetryable = %v, want %v", got, c.want)
			}
		})
	}
}
