package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tsdash/internal/platform/config"
	perr "tsdash/internal/platform/errors"
	pnet "tsdash/internal/platform/net"
	phttp "tsdash/internal/platform/net/http"
)

func reqWithReqID(method, path, body, rid string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestNewServer_RouterAndParams(t *testing.T) {
	t.Setenv("HTTPT_PORT", "4100")
	srv := phttp.NewServer(config.New().Prefix("HTTPT_"))
	if srv.Addr() != ":4100" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	r := srv.Router()
	r.Route("/sessions", func(sr phttp.Router) {
		sr.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = io.WriteString(w, phttp.URLParam(req, "id"))
		})
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "abc" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdaptChi_NotFoundEnvelope(t *testing.T) {
	r := phttp.NewServer(config.New().Prefix("HTTPT6_")).Router()
	r.Route("/api/v1", func(api phttp.Router) {
		api.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	for _, path := range []string{"/nope", "/api/v1/nope"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		env := decode(t, rec)
		if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: %d %+v", path, rec.Code, env)
		}
	}
}

func TestRespond_SuccessAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "", "rid-1"), map[string]string{"a": "b"})
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	err := perr.WithField(perr.Limitf("at most 5 series"), "series")
	phttp.RespondError(rec, reqWithReqID("POST", "/plot/render", "", "rid-2"), err)
	env = decode(t, rec)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Code != perr.ErrorCodeLimitExceeded || env.Error != "at most 5 series" || env.Field != "series" {
		t.Fatalf("bad error envelope: %+v", env)
	}
}

func TestHandle_NoContentAndHeaders(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		resp := phttp.NoContent()
		resp.Header = http.Header{"X-Window": []string{"unchanged"}}
		return resp
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Window") != "unchanged" {
		t.Fatalf("header not copied")
	}
}

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func TestJSONHandler_BindsAndWraps(t *testing.T) {
	r := phttp.NewServer(config.New().Prefix("HTTPT2_")).Router()
	r.Post("/echo", phttp.JSONHandler(func(_ *http.Request, in echoIn) (any, error) {
		if in.Name == "created" {
			return phttp.Created(in), nil
		}
		return map[string]string{"hello": in.Name}, nil
	}))

	cases := []struct {
		body string
		want int
	}{
		{`{"name":"ts"}`, http.StatusOK},
		{`{"name":"created"}`, http.StatusCreated},
		{`{}`, http.StatusBadRequest},
		{`nope`, http.StatusBadRequest},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(c.body)))
		if rec.Code != c.want {
			t.Fatalf("%s: status = %d, want %d", c.body, rec.Code, c.want)
		}
	}
}

func TestJSONHandlerNoBody_Error(t *testing.T) {
	r := phttp.NewServer(config.New().Prefix("HTTPT3_")).Router()
	r.Get("/missing", phttp.JSONHandlerNoBody(func(*http.Request) (any, error) {
		return nil, perr.NotFoundf("series %q not found", "x")
	}))
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	r := phttp.NewServer(config.New().Prefix("HTTPT4_")).Router()
	phttp.MountProfiler(r, "/debug", true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof index status = %d", rec.Code)
	}

	off := phttp.NewServer(config.New().Prefix("HTTPT5_")).Router()
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rec.Code)
	}
}
