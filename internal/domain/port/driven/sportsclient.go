package driven

import (
	"context"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

// SportsClient reads league data from the athletic association website.
// Both methods return empty results rather than errors when the remote site
// stays unreachable after retries.
type SportsClient interface {
	FetchStandings(ctx context.Context, leagueID int) ([]model.StandingTable, error)
	FetchScores(ctx context.Context, leagueID, schoolID int) ([][]string, error)
}
