// Package swaggerkit serves Swagger UI over a spec assembled from module registrations
package swaggerkit

import (
	"net/http"

	phttp "tsdash/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives; the spec is DocsPath + "/doc.json"
const DocsPath = "/api/docs"

// Mount serves the UI and the assembled spec when enabled
// routes collapse by default since plot carries most of them
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.URL(DocsPath+"/doc.json"),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DeepLinking(true),
	))
}
