package view

import (
	"bytes"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Markdown pages are served as HTML, so links between them are rewritten and
// headings get anchor ids. The sanitizer keeps those ids.
var (
	pageMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(pageLinkTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	pagePolicy = bluemonday.UGCPolicy()
)

// RenderMarkdown converts a markdown page body to sanitized HTML. Links to
// sibling .md pages point at their rendered .html form.
func RenderMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := pageMarkdown.Convert([]byte(src), &buf); err != nil {
		return pagePolicy.Sanitize(src)
	}
	return pagePolicy.Sanitize(buf.String())
}

// MarkdownTitle returns the first level-one heading of src, or the file name
// of name without its extension.
func MarkdownTitle(src, name string) string {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(path.Base(name), ".md")
}

type pageLinkTransformer struct{}

func (pageLinkTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := n.(*ast.Link); ok && entering {
			link.Destination = []byte(PageLink(string(link.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// PageLink maps a relative link to a markdown page onto the page's HTML path,
// keeping any query or fragment. Other links are returned unchanged.
func PageLink(dest string) string {
	if strings.Contains(dest, ":") || strings.HasPrefix(dest, "//") {
		return dest
	}
	ref, suffix := dest, ""
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		ref, suffix = dest[:i], dest[i:]
	}
	if !strings.HasSuffix(ref, ".md") {
		return dest
	}
	return strings.TrimSuffix(ref, ".md") + ".html" + suffix
}
