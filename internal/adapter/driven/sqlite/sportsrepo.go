package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SportsStore = (*SportsRepo)(nil)

// SportsRepo is the SQLite implementation of the SportsStore port interface.
// Standings and scores are stored as JSON columns; they are only ever read
// back whole.
type SportsRepo struct {
	db  *DB
	now func() time.Time
}

// NewSportsRepo creates a new SportsRepo backed by the given DB.
func NewSportsRepo(db *DB) *SportsRepo {
	return &SportsRepo{db: db, now: time.Now}
}

// Upsert inserts or replaces the report stored under key.
func (r *SportsRepo) Upsert(ctx context.Context, key string, report model.LeagueReport) error {
	const query = `
		INSERT INTO league_reports (key, label, league_id, school_id, updated, standings_json, scores_json, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			label = excluded.label,
			league_id = excluded.league_id,
			school_id = excluded.school_id,
			updated = excluded.updated,
			standings_json = excluded.standings_json,
			scores_json = excluded.scores_json,
			scraped_at = excluded.scraped_at`

	standings := report.Standings
	if standings == nil {
		standings = []model.StandingTable{}
	}
	standingsJSON, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("marshal standings for %q: %w", key, err)
	}

	scores := report.Scores
	if scores == nil {
		scores = [][]string{}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scores for %q: %w", key, err)
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		key,
		report.Label,
		report.LeagueID,
		report.SchoolID,
		report.Updated,
		string(standingsJSON),
		string(scoresJSON),
		r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert league report %q: %w", key, err)
	}

	return nil
}

// Get returns the report stored under key, or driven.ErrLeagueNotFound.
func (r *SportsRepo) Get(ctx context.Context, key string) (*model.LeagueReport, error) {
	const query = `
		SELECT label, league_id, school_id, updated, standings_json, scores_json
		FROM league_reports WHERE key = ?`

	var (
		report        model.LeagueReport
		standingsJSON string
		scoresJSON    string
	)

	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(
		&report.Label,
		&report.LeagueID,
		&report.SchoolID,
		&report.Updated,
		&standingsJSON,
		&scoresJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get league report %q: %w", key, driven.ErrLeagueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get league report %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(standingsJSON), &report.Standings); err != nil {
		return nil, fmt.Errorf("decode standings for %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(scoresJSON), &report.Scores); err != nil {
		return nil, fmt.Errorf("decode scores for %q: %w", key, err)
	}

	return &report, nil
}

// ListAll returns a summary of every stored report ordered by key.
func (r *SportsRepo) ListAll(ctx context.Context) ([]model.LeagueSummary, error) {
	const query = `SELECT key, label, updated, scraped_at FROM league_reports ORDER BY key`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list league reports: %w", err)
	}
	defer rows.Close()

	summaries := []model.LeagueSummary{}
	for rows.Next() {
		var (
			s         model.LeagueSummary
			scrapedAt string
		)

		if err := rows.Scan(&s.Key, &s.Label, &s.Updated, &scrapedAt); err != nil {
			return nil, fmt.Errorf("scan league report: %w", err)
		}

		s.ScrapedAt, err = parseTime(scrapedAt)
		if err != nil {
			return nil, fmt.Errorf("parse scraped_at for %q: %w", s.Key, err)
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate league reports: %w", err)
	}

	return summaries, nil
}

// parseTime attempts to parse a time string using several common SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
