package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	webhandler "github.com/ericfisherdev/gagesite/internal/adapter/driving/web"
	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/config"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var outDir, siteDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Pre-render the site for static hosting",
		Long: `Composes every .html and .md page of the site directory into the output
directory and copies every other file. The theme is left to the browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if siteDir != "" {
				cfg.SiteDir = siteDir
			}
			return runBuild(cmd.Context(), cfg, outDir, slog.Default())
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (overrides site_dir)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runBuild(ctx context.Context, cfg *config.Config, outDir string, logger *slog.Logger) error {
	if outDir == "" {
		return errors.New("output directory is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	assets, err := newSiteAssets(cfg, logger)
	if err != nil {
		return err
	}
	composer, _ := newComposer(assets, logger, nil)

	builder := application.NewSiteBuilder(assets.pages, composer, webhandler.Static(), logger)
	res, err := builder.Build(ctx, outDir)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}

	logger.Info("site built", "out", outDir, "pages", res.Pages, "assets", res.Assets)
	return nil
}
