package hssaa

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

const defaultTier = "Classement"

// minCells is the cell count below which a row is layout, not data.
const minCells = 3

// parseStandings extracts every standings table of a page. A table counts as
// standings when its first row mentions "School" or "GP". Each table is
// labeled with the text of the nearest preceding non-empty sibling element.
func parseStandings(r io.Reader) ([]model.StandingTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse standings: %w", err)
	}

	standings := []model.StandingTable{}
	for table := range doc.Descendants() {
		if !isElement(table, "table") {
			continue
		}

		rows := elements(table, "tr")
		if len(rows) < 2 {
			continue
		}

		headers := cellTexts(rows[0], "th", "td")
		joined := strings.Join(headers, " ")
		if len(headers) == 0 || (!strings.Contains(joined, "School") && !strings.Contains(joined, "GP")) {
			continue
		}

		tier := precedingText(table)
		if tier == "" {
			tier = defaultTier
		}

		st := model.StandingTable{Tier: tier, Rows: [][]string{}}
		for _, row := range rows[1:] {
			cells := cellTexts(row, "td")
			if len(cells) < minCells {
				continue
			}
			st.Rows = append(st.Rows, cells)
		}

		if len(st.Rows) > 0 {
			standings = append(standings, st)
		}
	}

	return standings, nil
}

// parseScores extracts every row of the page with enough data cells.
func parseScores(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}

	games := [][]string{}
	for _, row := range elements(doc, "tr") {
		cells := cellTexts(row, "td")
		if len(cells) < minCells {
			continue
		}
		games = append(games, cells)
	}
	return games, nil
}

func isElement(n *html.Node, tags ...string) bool {
	return n.Type == html.ElementNode && slices.Contains(tags, n.Data)
}

// elements returns the descendants of n with one of the given tags, in
// document order.
func elements(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	for d := range n.Descendants() {
		if isElement(d, tags...) {
			out = append(out, d)
		}
	}
	return out
}

func cellTexts(row *html.Node, tags ...string) []string {
	cells := elements(row, tags...)
	texts := make([]string, 0, len(cells))
	for _, c := range cells {
		texts = append(texts, strippedText(c))
	}
	return texts
}

// precedingText returns the text of the closest previous sibling element
// with non-empty text.
func precedingText(n *html.Node) string {
	for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type != html.ElementNode {
			continue
		}
		if text := strippedText(prev); text != "" {
			return text
		}
	}
	return ""
}

// strippedText concatenates the trimmed text nodes under n.
func strippedText(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(d.Data))
		}
	}
	return b.String()
}
