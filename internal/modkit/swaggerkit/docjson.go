package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Op documents one route for the served spec
type Op struct {
	Method  string
	Path    string // relative to /api/v1, chi style params are fine
	Summary string
	Tag     string
	// Body names a request schema added with Schema, "" for none
	Body string
}

var (
	mu      sync.RWMutex
	ops     []Op
	schemas = map[string]any{}
	title   = "tsdash API"
	version = "0.0.0"
)

// SetInfo sets the title and version shown in the UI
func SetInfo(t, v string) {
	mu.Lock()
	defer mu.Unlock()
	if t != "" {
		title = t
	}
	if v != "" {
		version = v
	}
}

// Document adds routes to the spec; modules call it from their http Register
func Document(o ...Op) {
	mu.Lock()
	ops = append(ops, o...)
	mu.Unlock()
}

// Schema registers a named component schema
func Schema(name string, s map[string]any) {
	mu.Lock()
	schemas[name] = s
	mu.Unlock()
}

// reset clears registrations between tests
func reset() {
	mu.Lock()
	ops, schemas = nil, map[string]any{}
	mu.Unlock()
}

// Spec renders the OpenAPI 3.0 document from registered ops
func Spec() map[string]any {
	mu.RLock()
	defer mu.RUnlock()

	comps := map[string]any{"ErrorResponse": errorResponse()}
	for k, v := range schemas {
		comps[k] = v
	}

	paths := map[string]any{}
	sorted := append([]Op(nil), ops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	for _, o := range sorted {
		node, _ := paths[o.Path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[o.Path] = node
		}
		op := map[string]any{
			"summary": o.Summary,
			"responses": map[string]any{
				"200": map[string]any{"description": "ok"},
				"400": errRef("Bad Request"),
				"500": errRef("Internal Server Error"),
			},
		}
		if o.Tag != "" {
			op["tags"] = []any{o.Tag}
		}
		if params := pathParams(o.Path); len(params) > 0 {
			op["parameters"] = params
		}
		if o.Body != "" {
			op["requestBody"] = map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/" + o.Body},
					},
				},
			}
		}
		node[strings.ToLower(o.Method)] = op
	}

	return map[string]any{
		"openapi":    "3.0.3",
		"info":       map[string]any{"title": title, "version": version},
		"servers":    []any{map[string]any{"url": "/api/v1"}},
		"paths":      paths,
		"components": map[string]any{"schemas": comps},
	}
}

// pathParams turns {name} segments into required path parameters
func pathParams(p string) []any {
	var out []any
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			out = append(out, map[string]any{
				"name":     strings.Trim(seg, "{}"),
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	return out
}

func errRef(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
}

// errorResponse mirrors the runtime envelope
func errorResponse() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Spec())
	}
}
