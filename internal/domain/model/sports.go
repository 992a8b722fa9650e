package model

import "time"

// UpdatedLayout is the timestamp format of LeagueReport.Updated.
const UpdatedLayout = "2006-01-02 15:04 UTC"

// DefaultSchoolID is the HSSAA identifier of É.S. Gaétan-Gervais.
const DefaultSchoolID = 12

// League identifies one HSSAA league followed by the site.
type League struct {
	Key      string // file key, e.g. "soccer-filles-junior"
	LeagueID int
	Label    string
	SchoolID int
}

// StandingTable is one tier of a league's standings. Rows hold the raw cell
// text of each team row, in page order.
type StandingTable struct {
	Tier string     `json:"tier"`
	Rows [][]string `json:"rows"`
}

// LeagueReport is a scraped snapshot of a league's standings and the school's
// scores. Its JSON form is the assets/data/sports/<key>.json file format.
type LeagueReport struct {
	Label     string          `json:"label"`
	LeagueID  int             `json:"leagueid"`
	SchoolID  int             `json:"schoolid"`
	Updated   string          `json:"updated"`
	Standings []StandingTable `json:"standings"`
	Scores    [][]string      `json:"scores"`
}

// LeagueSummary is the listing view of a stored report.
type LeagueSummary struct {
	Key       string
	Label     string
	Updated   string
	ScrapedAt time.Time
}

// DefaultLeagues returns the leagues followed by the site for the given school.
func DefaultLeagues(schoolID int) []League {
	defs := []struct {
		key   string
		id    int
		label string
	}{
		{"basketball-filles-junior", 21, "Basketball — Filles Junior"},
		{"basketball-filles-senior", 22, "Basketball — Filles Senior"},
		{"basketball-garcons-junior", 1, "Basketball — Garçons Junior"},
		{"basketball-garcons-senior", 2, "Basketball — Garçons Senior"},
		{"volleyball-filles-junior", 3, "Volleyball — Filles Junior"},
		{"volleyball-filles-senior", 4, "Volleyball — Filles Senior"},
		{"volleyball-garcons-junior", 25, "Volleyball — Garçons Junior"},
		{"volleyball-garcons-senior", 26, "Volleyball — Garçons Senior"},
		{"soccer-filles-junior", 27, "Soccer — Filles Junior"},
		{"soccer-filles-senior", 28, "Soccer — Filles Senior"},
		{"soccer-garcons-junior", 29, "Soccer — Garçons Junior"},
		{"soccer-garcons-senior", 30, "Soccer — Garçons Senior"},
	}

	leagues := make([]League, 0, len(defs))
	for _, d := range defs {
		leagues = append(leagues, League{Key: d.key, LeagueID: d.id, Label: d.label, SchoolID: schoolID})
	}
	return leagues
}
