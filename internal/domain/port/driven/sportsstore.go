package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

// ErrLeagueNotFound indicates no report is stored for the requested league.
var ErrLeagueNotFound = errors.New("league report not found")

// SportsStore persists scraped league reports keyed by league key.
// Get returns ErrLeagueNotFound when no report exists.
type SportsStore interface {
	Upsert(ctx context.Context, key string, report model.LeagueReport) error
	Get(ctx context.Context, key string) (*model.LeagueReport, error)
	// ListAll returns summaries ordered by key.
	ListAll(ctx context.Context) ([]model.LeagueSummary, error)
}
