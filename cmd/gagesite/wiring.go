package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ericfisherdev/gagesite/internal/adapter/driven/hssaa"
	"github.com/ericfisherdev/gagesite/internal/adapter/driven/siteassets"
	sqliteadapter "github.com/ericfisherdev/gagesite/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/config"
	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
	"github.com/ericfisherdev/gagesite/internal/metrics"
)

// siteAssets are the sources a composition reads partials and staff data from.
type siteAssets struct {
	pages    fs.FS
	partials driven.PartialSource
	staff    driven.StaffSource
}

// newSiteAssets reads pages from the site directory. Partials and staff data
// come from the remote host when one is configured, else from the same
// directory.
func newSiteAssets(cfg *config.Config, logger *slog.Logger) (siteAssets, error) {
	pages := os.DirFS(cfg.SiteDir)

	if cfg.HasRemoteSource() {
		remote, err := siteassets.NewHTTPSource(cfg.RemoteBaseURL)
		if err != nil {
			return siteAssets{}, fmt.Errorf("remote site source: %w", err)
		}
		logger.Info("site assets from remote host", "base_url", cfg.RemoteBaseURL)
		return siteAssets{pages: pages, partials: remote, staff: remote}, nil
	}

	local := siteassets.NewFSSource(pages, cfg.PublicURL)
	return siteAssets{pages: pages, partials: local, staff: local}, nil
}

func newComposer(assets siteAssets, logger *slog.Logger, m *metrics.Metrics) (*application.PageComposer, *application.StaffDirectory) {
	staff := application.NewStaffDirectory(assets.staff, logger, m)
	composer := application.NewPageComposer(
		application.NewFragmentIncluder(assets.partials, logger, m),
		staff,
		logger,
	)
	return composer, staff
}

// openSports opens the report store and builds the sports service. The
// caller closes the returned DB.
func openSports(
	ctx context.Context,
	cfg *config.Config,
	opts application.SportsOptions,
	logger *slog.Logger,
	m *metrics.Metrics,
) (*application.SportsService, *sqliteadapter.DB, error) {
	db, err := sqliteadapter.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database opened", "path", cfg.DBPath)

	client := hssaa.NewClient(cfg.HSSAABaseURL, logger)
	svc := application.NewSportsService(
		client,
		sqliteadapter.NewSportsRepo(db),
		model.DefaultLeagues(cfg.SchoolID),
		opts,
		logger,
		m,
	)
	return svc, db, nil
}

func closeDB(db *sqliteadapter.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("error closing database", "error", err)
	}
}
