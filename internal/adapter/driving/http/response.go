package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// StaffResponse is the JSON representation of a staff directory entry, with
// the photo fallback and reveal delay already applied.
type StaffResponse struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Email      string `json:"email,omitempty"`
	Photo      string `json:"photo"`
	DelayMS    int    `json:"delay_ms"`
}

// LeagueSummaryResponse is the JSON representation of a stored league.
type LeagueSummaryResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Updated   string `json:"updated"`
	ScrapedAt string `json:"scraped_at"`
}

func toStaffResponse(index int, rec model.StaffRecord) StaffResponse {
	return StaffResponse{
		Name:       rec.Name,
		Department: rec.Department,
		Role:       rec.Role,
		Email:      rec.Email,
		Photo:      rec.PhotoURL(),
		DelayMS:    model.StaggerDelay(index),
	}
}

func toLeagueSummaryResponse(l model.LeagueSummary) LeagueSummaryResponse {
	return LeagueSummaryResponse{
		Key:       l.Key,
		Label:     l.Label,
		Updated:   l.Updated,
		ScrapedAt: l.ScrapedAt.UTC().Format(time.RFC3339),
	}
}
