package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/gagesite/internal/view"
)

// ErrPageNotFound indicates no page exists at the requested path.
var ErrPageNotFound = errors.New("page not found")

// SitePages loads the site's pages: HTML files as-is and markdown files
// rendered into the site layout.
type SitePages struct {
	fsys fs.FS
}

// NewSitePages creates a SitePages over the site directory fsys.
func NewSitePages(fsys fs.FS) *SitePages {
	return &SitePages{fsys: fsys}
}

// IsPage reports whether the file at name is composed as a page rather than
// served as a plain asset. Partials are assets.
func IsPage(name string) bool {
	if strings.HasPrefix(name, "partials/") {
		return false
	}
	ext := path.Ext(name)
	return ext == ".html" || ext == ".md"
}

// Load returns the page at urlPath. The lookup tries, in order, the path
// itself, "<path>.html", "<path>/index.html" and the markdown sibling.
func (p *SitePages) Load(ctx context.Context, urlPath string) (Page, error) {
	for _, name := range candidates(urlPath) {
		data, err := fs.ReadFile(p.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Page{}, fmt.Errorf("read page %s: %w", name, err)
		}

		if path.Ext(name) == ".md" {
			return p.renderMarkdown(ctx, name, data)
		}
		return Page{Name: name, Body: data}, nil
	}
	return Page{}, fmt.Errorf("%s: %w", urlPath, ErrPageNotFound)
}

func (p *SitePages) renderMarkdown(ctx context.Context, name string, src []byte) (Page, error) {
	content := string(src)
	outName := strings.TrimSuffix(name, ".md") + ".html"

	layout := view.Layout(
		view.MarkdownTitle(content, name),
		view.BasePath(outName),
		templ.Raw(view.RenderMarkdown(content)),
	)

	var buf bytes.Buffer
	if err := layout.Render(ctx, &buf); err != nil {
		return Page{}, fmt.Errorf("render markdown page %s: %w", name, err)
	}
	return Page{Name: outName, Body: buf.Bytes()}, nil
}

func candidates(urlPath string) []string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || strings.HasSuffix(urlPath, "/") {
		name = path.Join(name, "index.html")
	}
	if !fs.ValidPath(name) || strings.HasPrefix(name, "partials/") {
		return nil
	}

	switch path.Ext(name) {
	case ".html":
		return []string{name, strings.TrimSuffix(name, ".html") + ".md"}
	case ".md":
		return []string{name}
	case "":
		return []string{name + ".html", path.Join(name, "index.html"), name + ".md", path.Join(name, "index.md")}
	default:
		return nil
	}
}
