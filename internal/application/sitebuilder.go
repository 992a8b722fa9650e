package application

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

// BuildResult summarizes a static build.
type BuildResult struct {
	Pages  int
	Assets int
}

// SiteBuilder pre-renders a site directory for static hosting.
type SiteBuilder struct {
	site     fs.FS
	pages    *SitePages
	composer *PageComposer
	static   fs.FS
	logger   *slog.Logger
}

// NewSiteBuilder creates a SiteBuilder. static holds the browser glue assets,
// written under _gage/static in the output.
func NewSiteBuilder(site fs.FS, composer *PageComposer, static fs.FS, logger *slog.Logger) *SiteBuilder {
	return &SiteBuilder{
		site:     site,
		pages:    NewSitePages(site),
		composer: composer,
		static:   static,
		logger:   logger,
	}
}

// Build composes every page of the site into outDir and copies every other
// file verbatim. The theme is left to the browser.
func (b *SiteBuilder) Build(ctx context.Context, outDir string) (BuildResult, error) {
	var res BuildResult

	err := fs.WalkDir(b.site, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		if !IsPage(name) {
			res.Assets++
			return copyFile(b.site, name, filepath.Join(outDir, filepath.FromSlash(name)))
		}

		page, err := b.pages.Load(ctx, name)
		if err != nil {
			return err
		}
		page = b.composer.Compose(ctx, page, ComposeOptions{})
		res.Pages++

		return writeFile(filepath.Join(outDir, filepath.FromSlash(page.Name)), page.Body)
	})
	if err != nil {
		return res, fmt.Errorf("build site: %w", err)
	}

	if b.static != nil {
		err = fs.WalkDir(b.static, ".", func(name string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			res.Assets++
			return copyFile(b.static, name, filepath.Join(outDir, "_gage", "static", filepath.FromSlash(name)))
		})
		if err != nil {
			return res, fmt.Errorf("copy static glue: %w", err)
		}
	}

	b.logger.Info("site built", "out", outDir, "pages", res.Pages, "assets", res.Assets)
	return res, nil
}

func copyFile(fsys fs.FS, name, dest string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path.Base(name), err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", name, err)
	}
	return out.Close()
}

func writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
