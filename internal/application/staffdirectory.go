package application

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
	"github.com/ericfisherdev/gagesite/internal/htmlsplice"
	"github.com/ericfisherdev/gagesite/internal/metrics"
	"github.com/ericfisherdev/gagesite/internal/view"
)

const (
	// StaffGridID is the id of the element receiving the staff cards.
	StaffGridID = "staff-grid"

	// StaffDataPath is the staff list location relative to a page.
	StaffDataPath = "assets/data/staff.json"
)

// StaffDirectory renders the staff list into a page's grid.
type StaffDirectory struct {
	source  driven.StaffSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewStaffDirectory creates a StaffDirectory backed by source. m may be nil.
func NewStaffDirectory(source driven.StaffSource, logger *slog.Logger, m *metrics.Metrics) *StaffDirectory {
	return &StaffDirectory{source: source, logger: logger, metrics: m}
}

// List loads the staff records from the site root.
func (d *StaffDirectory) List(ctx context.Context) ([]model.StaffRecord, error) {
	return d.source.LoadStaff(ctx, StaffDataPath)
}

// RenderGrid fills the page's staff grid with one card per record, in one
// splice. Any load or render failure replaces the grid content with the
// generic unavailable message. Pages without a grid are returned untouched.
func (d *StaffDirectory) RenderGrid(ctx context.Context, page Page) Page {
	if !htmlsplice.HasElement(page.Body, StaffGridID) {
		return page
	}

	ref := resolveRef(page.Name, StaffDataPath)

	var buf bytes.Buffer
	records, err := d.source.LoadStaff(ctx, ref)
	if err == nil {
		err = view.StaffCards(records).Render(ctx, &buf)
	}
	if err != nil {
		d.logger.Error("staff directory unavailable", "ref", ref, "page", page.Name, "error", err)
		buf.Reset()
		buf.WriteString(view.StaffUnavailableHTML)
	}
	d.metrics.StaffRendered(err == nil)

	body, _ := htmlsplice.ReplaceInner(page.Body, StaffGridID, buf.Bytes())
	return Page{Name: page.Name, Body: body}
}
