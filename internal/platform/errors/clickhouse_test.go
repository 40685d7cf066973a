package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func chEx(code int32) error {
	return &clickhouse.Exception{Code: code, Name: "DB::Exception", Message: "test"}
}

func TestCHErrorCode(t *testing.T) {
	cases := []struct {
		code int32
		want ErrorCode
	}{
		{6, ErrorCodeInvalidArgument},
		{41, ErrorCodeInvalidArgument},
		{53, ErrorCodeInvalidArgument},
		{60, ErrorCodeUnavailable},
		{159, ErrorCodeUnavailable},
		{241, ErrorCodeUnavailable},
		{999, ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := CHErrorCode(fmt.Errorf("query: %w", chEx(c.code)))
		if !ok {
			t.Fatalf("expected ok for exception %d", c.code)
		}
		if got != c.want {
			t.Fatalf("CHErrorCode(%d) = %v, want %v", c.code, got, c.want)
		}
	}
	if _, ok := CHErrorCode(stderrs.New("eof")); ok {
		t.Fatalf("plain error should not map")
	}
}

func TestFromClickhouse(t *testing.T) {
	if FromClickhouse(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	if err := FromClickhousef(chEx(60), "read %s", "datapoints"); CodeOf(err) != ErrorCodeUnavailable {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if err := FromClickhouse(stderrs.New("eof"), "x"); CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code = %v", CodeOf(err))
	}
}
