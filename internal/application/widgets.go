package application

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/ericfisherdev/gagesite/internal/domain/behavior"
	"github.com/ericfisherdev/gagesite/internal/htmlsplice"
)

// WidgetManifestID is the id of the script element carrying the widget plan.
const WidgetManifestID = "gage-widgets"

// PlanWidgets scans doc for sliders and builds the widget manifest. A slider
// whose embedded configuration is missing or not valid JSON is logged and
// skipped; the other sliders are unaffected.
func PlanWidgets(doc []byte, logger *slog.Logger) behavior.WidgetPlan {
	plan := behavior.NewWidgetPlan()

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		logger.Warn("widget scan failed", "error", err)
		return plan
	}

	index := 0
	for n := range root.Descendants() {
		if n.Type != html.ElementNode || !hasClass(n, "init-swiper") {
			continue
		}
		i := index
		index++

		cfgNode := findDescendant(n, func(c *html.Node) bool {
			return c.Type == html.ElementNode && hasClass(c, "swiper-config")
		})
		if cfgNode == nil {
			logger.Warn("slider has no configuration block", "slider", i)
			continue
		}

		raw := strings.TrimSpace(textContent(cfgNode))
		if !json.Valid([]byte(raw)) {
			logger.Error("slider configuration is not valid JSON", "slider", i)
			continue
		}

		plan.Sliders = append(plan.Sliders, behavior.SliderInit{
			Index:            i,
			CustomPagination: hasClass(n, "swiper-tab"),
			Config:           json.RawMessage(raw),
		})
	}

	return plan
}

// injectWidgetPlan appends the manifest script to the page body. Pages that
// already carry a manifest are left alone.
func injectWidgetPlan(doc []byte, plan behavior.WidgetPlan) ([]byte, error) {
	if htmlsplice.HasElement(doc, WidgetManifestID) {
		return doc, nil
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return doc, err
	}

	var snippet bytes.Buffer
	snippet.WriteString(`<script type="application/json" id="` + WidgetManifestID + `">`)
	snippet.Write(data)
	snippet.WriteString("</script>\n")

	return htmlsplice.InsertBeforeBodyEnd(doc, snippet.Bytes()), nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return slices.Contains(strings.Fields(a.Val), class)
		}
	}
	return false
}

func findDescendant(n *html.Node, match func(*html.Node) bool) *html.Node {
	for d := range n.Descendants() {
		if match(d) {
			return d
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}
