package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
	"github.com/ericfisherdev/gagesite/internal/metrics"
)

// SportsOptions configures a SportsService.
type SportsOptions struct {
	// Interval between scrape runs in Start. Zero disables the loop.
	Interval time.Duration
	// Concurrency bounds the leagues scraped at once. Values below 1 mean 1.
	Concurrency int
	// OutDir, when set, receives one <league>.json file per report.
	OutDir string
}

// SportsService scrapes league standings and scores, persists them and
// optionally exports them as static JSON files.
type SportsService struct {
	client  driven.SportsClient
	store   driven.SportsStore
	leagues []model.League
	opts    SportsOptions
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewSportsService creates a SportsService for leagues. m may be nil.
func NewSportsService(
	client driven.SportsClient,
	store driven.SportsStore,
	leagues []model.League,
	opts SportsOptions,
	logger *slog.Logger,
	m *metrics.Metrics,
) *SportsService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &SportsService{
		client:  client,
		store:   store,
		leagues: leagues,
		opts:    opts,
		now:     time.Now,
		logger:  logger,
		metrics: m,
	}
}

// Start runs a scrape immediately, then on every interval, until ctx is
// canceled. It returns at once when the interval is zero.
func (s *SportsService) Start(ctx context.Context) {
	if s.opts.Interval <= 0 {
		return
	}

	if err := s.ScrapeAll(ctx); err != nil {
		s.logger.Error("initial sports scrape failed", "error", err)
	}

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sports scraper stopped")
			return
		case <-ticker.C:
			if err := s.ScrapeAll(ctx); err != nil {
				s.logger.Error("sports scrape cycle failed", "error", err)
			}
		}
	}
}

// ScrapeAll scrapes every league. A failing league does not stop the others;
// all failures are returned joined.
func (s *SportsService) ScrapeAll(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("sports scrape starting", "leagues", len(s.leagues))

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, league := range s.leagues {
		g.Go(func() error {
			_, err := s.ScrapeLeague(gctx, league)
			s.metrics.LeagueScraped(league.Key, err)
			if err != nil {
				s.logger.Error("league scrape failed", "league", league.Key, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.ScrapeRunFinished(time.Since(start))
	s.logger.Info("sports scrape complete",
		"leagues", len(s.leagues),
		"errors", len(errs),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return errors.Join(errs...)
}

// ScrapeLeague fetches, stores and exports one league's report.
func (s *SportsService) ScrapeLeague(ctx context.Context, league model.League) (model.LeagueReport, error) {
	standings, err := s.client.FetchStandings(ctx, league.LeagueID)
	if err != nil {
		return model.LeagueReport{}, fmt.Errorf("standings for %s: %w", league.Key, err)
	}
	scores, err := s.client.FetchScores(ctx, league.LeagueID, league.SchoolID)
	if err != nil {
		return model.LeagueReport{}, fmt.Errorf("scores for %s: %w", league.Key, err)
	}

	if standings == nil {
		standings = []model.StandingTable{}
	}
	if scores == nil {
		scores = [][]string{}
	}

	report := model.LeagueReport{
		Label:     league.Label,
		LeagueID:  league.LeagueID,
		SchoolID:  league.SchoolID,
		Updated:   s.now().UTC().Format(model.UpdatedLayout),
		Standings: standings,
		Scores:    scores,
	}

	if err := s.store.Upsert(ctx, league.Key, report); err != nil {
		return report, fmt.Errorf("store %s: %w", league.Key, err)
	}

	if s.opts.OutDir != "" {
		if err := writeReportFile(s.opts.OutDir, league.Key, report); err != nil {
			return report, err
		}
	}

	s.logger.Info("league scraped",
		"league", league.Key,
		"standing_tables", len(standings),
		"score_rows", len(scores),
	)
	return report, nil
}

// Report returns the stored report for key.
func (s *SportsService) Report(ctx context.Context, key string) (*model.LeagueReport, error) {
	return s.store.Get(ctx, key)
}

// List returns summaries of every stored report.
func (s *SportsService) List(ctx context.Context) ([]model.LeagueSummary, error) {
	return s.store.ListAll(ctx)
}

// EncodeReport returns the report in the exported JSON file format: indented,
// with non-ASCII and markup characters kept literal.
func EncodeReport(report model.LeagueReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeReportFile(outDir, key string, report model.LeagueReport) error {
	data, err := EncodeReport(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create sports dir: %w", err)
	}
	dest := filepath.Join(outDir, key+".json")
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
