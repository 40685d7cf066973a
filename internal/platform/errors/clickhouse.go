package errors

// ClickHouse mapping for the datapoints store

import (
	stderrs "errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// server exception codes the datapoints reads run into
const (
	chErrCannotParseText     int32 = 6
	chErrCannotParseDateTime int32 = 41
	chErrIllegalType         int32 = 43
	chErrTypeMismatch        int32 = 53
	chErrUnknownTable        int32 = 60
	chErrUnknownDatabase     int32 = 81
	chErrTimeoutExceeded     int32 = 159
	chErrTooManyQueries      int32 = 202
	chErrNetwork             int32 = 210
	chErrMemoryLimit         int32 = 241
)

// ExtractClickhouseError returns the server exception behind err, if any
func ExtractClickhouseError(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// CHErrorCode maps a ClickHouse exception to an ErrorCode
// !ok means err was not a server exception
func CHErrorCode(err error) (ErrorCode, bool) {
	ex, ok := ExtractClickhouseError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch ex.Code {
	case chErrCannotParseText, chErrCannotParseDateTime, chErrIllegalType, chErrTypeMismatch:
		return ErrorCodeInvalidArgument, true
	case chErrTimeoutExceeded, chErrTooManyQueries, chErrNetwork, chErrMemoryLimit:
		return ErrorCodeUnavailable, true
	case chErrUnknownTable, chErrUnknownDatabase:
		// schema not applied yet
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromClickhouse wraps a clickhouse error with a mapped ErrorCode and message
func FromClickhouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := CHErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromClickhousef is the formatted variant of FromClickhouse
func FromClickhousef(err error, format string, a ...any) error {
	return FromClickhouse(err, fmt.Sprintf(format, a...))
}
