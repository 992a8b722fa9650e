package hssaa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsPage = `<html><body>
<div id="content">
  <h3>  Division 1 </h3>
  <table>
    <tr><th>School</th><th>GP</th><th>W</th><th>L</th></tr>
    <tr><td>Gage</td><td>4</td><td>3</td><td>1</td></tr>
    <tr><td colspan="4">Updated weekly</td></tr>
    <tr><td>Harbour View</td><td>4</td><td>1</td><td>3</td></tr>
  </table>
  <p></p>
  <table>
    <tr><th>Team</th><th>GP</th><th>Pts</th></tr>
    <tr><td>Oromocto</td><td>3</td><td><b>6</b></td></tr>
  </table>
  <table>
    <tr><td>Menu</td><td>Home</td></tr>
    <tr><td>a</td><td>b</td><td>c</td></tr>
  </table>
  <table>
    <tr><th>School</th></tr>
  </table>
</div>
</body></html>`

func TestParseStandings(t *testing.T) {
	standings, err := parseStandings(strings.NewReader(standingsPage))
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "Division 1", standings[0].Tier)
	assert.Equal(t, [][]string{
		{"Gage", "4", "3", "1"},
		{"Harbour View", "4", "1", "3"},
	}, standings[0].Rows)

	// The empty <p> is skipped and the nearest non-empty sibling is the first table.
	assert.Contains(t, standings[1].Tier, "Gage")
	assert.Equal(t, [][]string{{"Oromocto", "3", "6"}}, standings[1].Rows)
}

func TestParseStandings_DefaultTier(t *testing.T) {
	page := `<table><tr><th>School</th><th>GP</th></tr><tr><td>Gage</td><td>2</td><td>1</td></tr></table>`

	standings, err := parseStandings(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Classement", standings[0].Tier)
}

func TestParseStandings_NoDataRowsDropsTable(t *testing.T) {
	page := `<h3>Tier</h3><table><tr><th>School</th><th>GP</th></tr><tr><td>x</td><td>y</td></tr></table>`

	standings, err := parseStandings(strings.NewReader(page))
	require.NoError(t, err)
	assert.Empty(t, standings)
	assert.NotNil(t, standings)
}

func TestParseScores(t *testing.T) {
	page := `<table>
	  <tr><th>Date</th><th>Home</th><th>Away</th></tr>
	  <tr><td>2025-09-12</td><td> Gage 2 </td><td>FHS 1</td></tr>
	  <tr><td>Postponed</td><td></td></tr>
	  <tr><td>2025-09-19</td><td>Gage 0</td><td>LHS 0</td><td>Final</td></tr>
	</table>`

	scores, err := parseScores(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"2025-09-12", "Gage 2", "FHS 1"},
		{"2025-09-19", "Gage 0", "LHS 0", "Final"},
	}, scores)
}

func TestParseScores_EmptyPage(t *testing.T) {
	scores, err := parseScores(strings.NewReader(`<html><body><p>No games</p></body></html>`))
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}
