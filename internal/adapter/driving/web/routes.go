package web

import (
	"io/fs"
	"net/http"
)

// Static returns the browser glue assets rooted at their serving prefix.
func Static() fs.FS {
	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic("web: embedded static dir missing: " + err.Error())
	}
	return staticFS
}

// RegisterRoutes registers the site routes on the provided mux.
// Composed pages and site assets are served at /{path...}; the browser glue
// lives under /_gage/static/.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /_gage/static/", http.StripPrefix("/_gage/static/", http.FileServerFS(Static())))

	mux.HandleFunc("POST /theme/toggle", h.ToggleTheme)

	mux.HandleFunc("GET /sports", h.SportsIndex)
	mux.HandleFunc("GET /sports/{$}", h.SportsIndex)
	mux.HandleFunc("GET /sports/{league}", h.SportsLeague)
	mux.HandleFunc("GET /assets/data/sports/{file}", h.SportsData)

	mux.HandleFunc("GET /{path...}", h.Page)
}
