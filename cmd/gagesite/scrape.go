package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/config"
	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

func newScrapeCmd(root *rootOptions) *cobra.Command {
	var (
		outDir  string
		leagues []string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape HSSAA standings and scores once",
		Long: `Fetches standings and school scores for every followed league, stores
them in the database and, when an output directory is set, writes one
<league>.json file per league.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.SportsOutDir = outDir
			}
			return runScrape(cmd.Context(), cfg, leagues, slog.Default())
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory for <league>.json files (overrides sports_out_dir)")
	cmd.Flags().StringSliceVar(&leagues, "league", nil, "league keys to scrape (default: all)")
	return cmd
}

func runScrape(ctx context.Context, cfg *config.Config, only []string, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sports, db, err := openSports(ctx, cfg, application.SportsOptions{
		Concurrency: cfg.ScrapeConcurrency,
		OutDir:      cfg.SportsOutDir,
	}, logger, nil)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	if len(only) == 0 {
		return sports.ScrapeAll(ctx)
	}

	selected, err := selectLeagues(model.DefaultLeagues(cfg.SchoolID), only)
	if err != nil {
		return err
	}
	for _, league := range selected {
		if _, err := sports.ScrapeLeague(ctx, league); err != nil {
			return fmt.Errorf("scrape %s: %w", league.Key, err)
		}
	}
	return nil
}

// selectLeagues returns the leagues named by keys, in keys order.
func selectLeagues(all []model.League, keys []string) ([]model.League, error) {
	selected := make([]model.League, 0, len(keys))
	for _, key := range keys {
		i := slices.IndexFunc(all, func(l model.League) bool { return l.Key == key })
		if i < 0 {
			return nil, fmt.Errorf("unknown league %q", key)
		}
		selected = append(selected, all[i])
	}
	return selected, nil
}
