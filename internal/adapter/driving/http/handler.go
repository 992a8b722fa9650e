// Package httphandler serves the JSON API and the cross-cutting HTTP
// middleware.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	staff  *application.StaffDirectory
	sports *application.SportsService
	logger *slog.Logger
}

// NewHandler creates a Handler. sports may be nil when no store is
// configured; the sports endpoints then answer 503.
func NewHandler(staff *application.StaffDirectory, sports *application.SportsService, logger *slog.Logger) *Handler {
	return &Handler{staff: staff, sports: sports, logger: logger}
}

// RegisterRoutes registers the API routes on the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/staff", h.ListStaff)
	mux.HandleFunc("GET /api/v1/sports", h.ListSports)
	mux.HandleFunc("GET /api/v1/sports/{league}", h.GetSports)
}

// Health returns a simple liveness response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListStaff returns the staff directory in source order.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	records, err := h.staff.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load staff", "error", err)
		writeError(w, http.StatusBadGateway, "unable to load staff list")
		return
	}

	resp := make([]StaffResponse, 0, len(records))
	for i, rec := range records {
		resp = append(resp, toStaffResponse(i, rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListSports returns a summary of every stored league report.
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	if h.sports == nil {
		writeError(w, http.StatusServiceUnavailable, "sports data not configured")
		return
	}

	leagues, err := h.sports.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leagues", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]LeagueSummaryResponse, 0, len(leagues))
	for _, l := range leagues {
		resp = append(resp, toLeagueSummaryResponse(l))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetSports returns one league report in the exported file format.
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	if h.sports == nil {
		writeError(w, http.StatusServiceUnavailable, "sports data not configured")
		return
	}

	key := r.PathValue("league")
	report, err := h.sports.Report(r.Context(), key)
	if errors.Is(err, driven.ErrLeagueNotFound) {
		writeError(w, http.StatusNotFound, "league not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get league report", "league", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
