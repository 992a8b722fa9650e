package application

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
	"github.com/ericfisherdev/gagesite/internal/htmlsplice"
	"github.com/ericfisherdev/gagesite/internal/metrics"
)

// Page is an HTML document being composed. Name is its slash-separated path
// relative to the site root; asset refs in the page resolve against its
// directory.
type Page struct {
	Name string
	Body []byte
}

// Fragment describes a shared partial and the placeholder it replaces.
type Fragment struct {
	Name          string // partial name, e.g. "header"
	PlaceholderID string
	ScriptPath    string // include script path relative to the site root

	scriptPattern *regexp.Regexp
}

// NewFragment returns the fragment for partial name, following the
// "<name>-placeholder" and "assets/js/include-<name>.js" conventions.
func NewFragment(name string) Fragment {
	scriptPath := "assets/js/include-" + name + ".js"
	return Fragment{
		Name:          name,
		PlaceholderID: name + "-placeholder",
		ScriptPath:    scriptPath,
		scriptPattern: scriptSuffixPattern(scriptPath),
	}
}

// Shared site fragments.
var (
	HeaderFragment = NewFragment("header")
	FooterFragment = NewFragment("footer")
)

// PartialRef returns the partial's location for the given script base.
func (f Fragment) PartialRef(base string) string {
	return base + "partials/" + f.Name + ".html"
}

// scriptBase finds the fragment's include script among the page's scripts and
// returns its base. Pages without the script resolve partials next to
// themselves.
func (f Fragment) scriptBase(doc []byte) string {
	pattern := f.scriptPattern
	if pattern == nil {
		pattern = scriptSuffixPattern(f.ScriptPath)
	}
	for _, src := range htmlsplice.ScriptSources(doc) {
		if pattern.MatchString(src) {
			return pattern.ReplaceAllString(src, "")
		}
	}
	return ""
}

// BaseFromScriptURL strips scriptPath and any query string from the end of
// src, leaving the site root the script was loaded from. An empty src yields
// an empty base; a src that does not end in scriptPath is returned unchanged.
func BaseFromScriptURL(src, scriptPath string) string {
	if src == "" {
		return ""
	}
	return scriptSuffixPattern(scriptPath).ReplaceAllString(src, "")
}

func scriptSuffixPattern(scriptPath string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(scriptPath) + `(\?.*)?$`)
}

// resolveRef resolves ref against the directory of the page named pageName.
// Absolute URLs pass through; root-relative refs drop their leading slash.
func resolveRef(pageName, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return path.Clean(strings.TrimPrefix(ref, "/"))
	}
	return path.Join(path.Dir(pageName), ref)
}

// FragmentIncluder splices shared partials into their placeholders.
type FragmentIncluder struct {
	source  driven.PartialSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFragmentIncluder creates a FragmentIncluder reading partials from source.
// m may be nil.
func NewFragmentIncluder(source driven.PartialSource, logger *slog.Logger, m *metrics.Metrics) *FragmentIncluder {
	return &FragmentIncluder{source: source, logger: logger, metrics: m}
}

// Include replaces frag's placeholder in page with the partial's markup,
// verbatim. Pages without the placeholder are returned untouched and no fetch
// happens. A failed fetch is logged and leaves the placeholder in place.
func (i *FragmentIncluder) Include(ctx context.Context, page Page, frag Fragment) Page {
	if !htmlsplice.HasElement(page.Body, frag.PlaceholderID) {
		return page
	}

	ref := resolveRef(page.Name, frag.PartialRef(frag.scriptBase(page.Body)))

	data, err := i.source.FetchPartial(ctx, ref)
	if err != nil {
		i.logger.Error("partial include failed",
			"partial", frag.Name,
			"ref", ref,
			"page", page.Name,
			"error", err,
		)
		i.metrics.IncludeFailed(frag.Name)
		return page
	}

	body, _ := htmlsplice.ReplaceOuter(page.Body, frag.PlaceholderID, data)
	return Page{Name: page.Name, Body: body}
}
