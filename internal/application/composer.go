package application

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/htmlsplice"
	"github.com/ericfisherdev/gagesite/internal/view"
)

// ThemeToggleID is the id of the theme toggle control.
const ThemeToggleID = "theme-toggle"

// legacyGlue matches the site's own behavior script, which the glue replaces.
var legacyGlue = scriptSuffixPattern("assets/js/main.js")

// ComposeOptions controls request-dependent composition steps.
type ComposeOptions struct {
	// Theme, when set, is applied to the root element and the toggle control.
	// Static builds leave it nil and let the browser resolve the theme.
	Theme *model.ThemePreference

	// AssetRoot prefixes the glue script reference. Empty means relative to
	// the page, which keeps static builds working under any subpath.
	AssetRoot string
}

// PageComposer runs the initialization phase of a page: partials first, so
// every later step sees the final markup, then the staff grid, the theme, the
// widget manifest and the glue script that reads it.
type PageComposer struct {
	includer *FragmentIncluder
	staff    *StaffDirectory
	logger   *slog.Logger
}

// NewPageComposer creates a PageComposer.
func NewPageComposer(includer *FragmentIncluder, staff *StaffDirectory, logger *slog.Logger) *PageComposer {
	return &PageComposer{includer: includer, staff: staff, logger: logger}
}

// Compose runs every step in order. Each step degrades on its own, so a
// failing collaborator never prevents the remaining steps.
func (c *PageComposer) Compose(ctx context.Context, page Page, opts ComposeOptions) Page {
	page = c.includer.Include(ctx, page, HeaderFragment)
	page = c.includer.Include(ctx, page, FooterFragment)
	page = c.staff.RenderGrid(ctx, page)

	if opts.Theme != nil {
		page.Body = ApplyTheme(page.Body, opts.Theme.Effective())
	}

	body, err := injectWidgetPlan(page.Body, PlanWidgets(page.Body, c.logger))
	if err != nil {
		c.logger.Error("widget manifest failed", "page", page.Name, "error", err)
	}
	page.Body = body

	page.Body = AttachGlue(page, opts.AssetRoot)

	return page
}

// AttachGlue makes page load the browser glue script. A page loading the
// legacy behavior script has that script pointed at the glue instead; other
// pages get the script appended to the body. Pages that already load the glue
// are returned unchanged.
func AttachGlue(page Page, root string) []byte {
	for _, src := range htmlsplice.ScriptSources(page.Body) {
		ref, _, _ := strings.Cut(src, "?")
		if strings.HasSuffix(ref, view.GlueScriptPath) {
			return page.Body
		}
	}

	if root == "" {
		root = view.BasePath(page.Name)
	}
	glue := root + view.GlueScriptPath

	if body, ok := htmlsplice.SetScriptSource(page.Body, legacyGlue.MatchString, glue); ok {
		return body
	}
	tag := `<script src="` + html.EscapeString(glue) + `"></script>` + "\n"
	return htmlsplice.InsertBeforeBodyEnd(page.Body, []byte(tag))
}

// ApplyTheme sets the dark marker class on the root element and reflects the
// theme in the toggle control's accessibility state and icon.
func ApplyTheme(doc []byte, theme model.Theme) []byte {
	doc = htmlsplice.SetRootClass(doc, model.DarkModeClass, theme == model.ThemeDark)

	ui := theme.ToggleUI()
	doc, _ = htmlsplice.SetAttributes(doc, ThemeToggleID,
		html.Attribute{Key: "aria-pressed", Val: strconv.FormatBool(ui.Pressed)},
		html.Attribute{Key: "title", Val: ui.Title},
	)
	doc, _ = htmlsplice.SwapChildClass(doc, ThemeToggleID, "i", model.ThemeToggleIcons, ui.Icon)
	return doc
}
