// Package httpkit re-exports the platform http surface for modules
// modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "tsdash/internal/platform/net/http"
	"tsdash/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Bind adapts a handler that takes a validated JSON body
func Bind[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Handle adapts a Response returning function
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// URLParam reads a route parameter such as {external_id}
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Parse decodes and validates a JSON body for handlers built with Handle
func Parse[T any](r *http.Request) (T, error) { return bind.ParseJSON[T](r) }
