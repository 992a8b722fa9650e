// Package web serves the composed site pages, the theme toggle endpoint and
// the sports pages.
package web

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
	"github.com/ericfisherdev/gagesite/internal/view"
)

const notFoundPage = "404.html"

// Handler is the web driving adapter that serves composed HTML pages.
type Handler struct {
	site     fs.FS
	pages    *application.SitePages
	composer *application.PageComposer
	sports   *application.SportsService
	logger   *slog.Logger
}

// NewHandler creates a Handler serving the site directory site. sports may be
// nil, in which case the sports routes answer 404.
func NewHandler(
	site fs.FS,
	composer *application.PageComposer,
	sports *application.SportsService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		site:     site,
		pages:    application.NewSitePages(site),
		composer: composer,
		sports:   sports,
		logger:   logger,
	}
}

// Page serves GET /{path...}: pages are composed for the requesting browser,
// anything else is served from the site directory as-is.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	urlPath := r.PathValue("path")
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")

	if isAsset(name) {
		h.serveAsset(w, r, name)
		return
	}

	page, err := h.pages.Load(r.Context(), urlPath)
	if errors.Is(err, application.ErrPageNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to load page", "path", urlPath, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writePage(w, r, http.StatusOK, page)
}

// ToggleTheme handles POST /theme/toggle. The form value "theme" selects a
// theme explicitly; without it the current effective theme is flipped.
// Scripted requests get 204, plain form posts are redirected back.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	pref := themePreference(r)
	next, ok := model.ParseTheme(r.FormValue("theme"))
	if !ok {
		next = pref.Toggle().Effective()
	}
	setThemeCookie(w, r, next)

	if r.Header.Get(csrfHeader) != "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
}

// SportsIndex serves GET /sports: the list of scraped leagues.
func (h *Handler) SportsIndex(w http.ResponseWriter, r *http.Request) {
	if h.sports == nil {
		h.notFound(w, r)
		return
	}

	leagues, err := h.sports.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leagues", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.renderLayout(w, r, "sports/index.html", "Sports", view.SportsIndex(leagues))
}

// SportsLeague serves GET /sports/{league}: one league's standings and scores.
func (h *Handler) SportsLeague(w http.ResponseWriter, r *http.Request) {
	if h.sports == nil {
		h.notFound(w, r)
		return
	}

	key := r.PathValue("league")
	report, err := h.sports.Report(r.Context(), key)
	if errors.Is(err, driven.ErrLeagueNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to get league report", "league", key, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.renderLayout(w, r, "sports/"+key+".html", report.Label, view.SportsReport(*report))
}

// SportsData serves GET /assets/data/sports/{file}. Stored reports take
// precedence over exported files in the site directory.
func (h *Handler) SportsData(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	key, isJSON := strings.CutSuffix(file, ".json")

	if isJSON && h.sports != nil {
		report, err := h.sports.Report(r.Context(), key)
		if err == nil {
			data, err := application.EncodeReport(*report)
			if err != nil {
				h.logger.Error("failed to encode league report", "league", key, "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-cache")
			_, _ = w.Write(data)
			return
		}
		if !errors.Is(err, driven.ErrLeagueNotFound) {
			h.logger.Warn("league report lookup failed, serving file", "league", key, "error", err)
		}
	}

	h.serveAsset(w, r, "assets/data/sports/"+file)
}

func (h *Handler) renderLayout(w http.ResponseWriter, r *http.Request, name, title string, body templ.Component) {
	var buf bytes.Buffer
	layout := view.Layout(title, view.BasePath(name), body)
	if err := layout.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writePage(w, r, http.StatusOK, application.Page{Name: name, Body: buf.Bytes()})
}

// writePage composes page for the request and writes it.
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, page application.Page) {
	pref := themePreference(r)
	page = h.composer.Compose(r.Context(), page, application.ComposeOptions{Theme: &pref, AssetRoot: "/"})

	csrfToken(w, r)
	advertiseThemeHints(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if _, err := w.Write(page.Body); err != nil {
		h.logger.Debug("failed to write page", "page", page.Name, "error", err)
	}
}

// notFound serves the site's 404 page, composed, when it has one.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.site, notFoundPage)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writePage(w, r, http.StatusNotFound, application.Page{Name: notFoundPage, Body: data})
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	info, err := fs.Stat(h.site, name)
	if err != nil || info.IsDir() {
		h.notFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.site, name)
}

// isAsset reports whether name is served raw rather than composed.
// Extensionless paths are page lookups.
func isAsset(name string) bool {
	return path.Ext(name) != "" && !application.IsPage(name)
}

// backTarget returns the same-site page the toggle was posted from, or "/".
func backTarget(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	target := ref.EscapedPath()
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}
