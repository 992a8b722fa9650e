package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

type mockSportsClient struct {
	standings map[int][]model.StandingTable
	scores    map[int][][]string
	failFor   int
	calls     atomic.Int32
}

func (m *mockSportsClient) FetchStandings(_ context.Context, leagueID int) ([]model.StandingTable, error) {
	m.calls.Add(1)
	if leagueID == m.failFor {
		return nil, errors.New("context canceled")
	}
	return m.standings[leagueID], nil
}

func (m *mockSportsClient) FetchScores(_ context.Context, leagueID, _ int) ([][]string, error) {
	return m.scores[leagueID], nil
}

type mockSportsStore struct {
	mu      sync.Mutex
	reports map[string]model.LeagueReport
}

func newMockSportsStore() *mockSportsStore {
	return &mockSportsStore{reports: map[string]model.LeagueReport{}}
}

func (m *mockSportsStore) Upsert(_ context.Context, key string, report model.LeagueReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[key] = report
	return nil
}

func (m *mockSportsStore) Get(_ context.Context, key string) (*model.LeagueReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[key]
	if !ok {
		return nil, driven.ErrLeagueNotFound
	}
	return &r, nil
}

func (m *mockSportsStore) ListAll(_ context.Context) ([]model.LeagueSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.LeagueSummary
	for k, r := range m.reports {
		out = append(out, model.LeagueSummary{Key: k, Label: r.Label, Updated: r.Updated})
	}
	return out, nil
}

var testLeagues = []model.League{
	{Key: "soccer-filles-junior", LeagueID: 27, Label: "Soccer — Filles Junior", SchoolID: 12},
	{Key: "soccer-filles-senior", LeagueID: 28, Label: "Soccer — Filles Senior", SchoolID: 12},
}

func TestScrapeLeague_StoresAndExports(t *testing.T) {
	client := &mockSportsClient{
		standings: map[int][]model.StandingTable{27: {{Tier: "Tier 1", Rows: [][]string{{"GAGE", "3", "2"}}}}},
		scores:    map[int][][]string{27: {{"Oct 1", "GAGE", "2-0"}}},
	}
	store := newMockSportsStore()
	out := t.TempDir()
	svc := application.NewSportsService(client, store, testLeagues, application.SportsOptions{OutDir: out}, discardLogger(), nil)

	report, err := svc.ScrapeLeague(context.Background(), testLeagues[0])
	require.NoError(t, err)

	assert.Equal(t, "Soccer — Filles Junior", report.Label)
	assert.Equal(t, 27, report.LeagueID)
	assert.Equal(t, 12, report.SchoolID)
	_, err = time.Parse(model.UpdatedLayout, report.Updated)
	assert.NoError(t, err)

	stored, err := svc.Report(context.Background(), "soccer-filles-junior")
	require.NoError(t, err)
	assert.Equal(t, report, *stored)

	data, err := os.ReadFile(filepath.Join(out, "soccer-filles-junior.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label": "Soccer — Filles Junior"`)

	var decoded model.LeagueReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report, decoded)
}

func TestScrapeLeague_EmptyResultsEncodeAsArrays(t *testing.T) {
	svc := application.NewSportsService(&mockSportsClient{}, newMockSportsStore(), testLeagues, application.SportsOptions{}, discardLogger(), nil)

	report, err := svc.ScrapeLeague(context.Background(), testLeagues[1])
	require.NoError(t, err)

	data, err := application.EncodeReport(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"standings": []`)
	assert.Contains(t, string(data), `"scores": []`)
}

func TestScrapeAll_OneFailureDoesNotStopOthers(t *testing.T) {
	client := &mockSportsClient{failFor: 27}
	store := newMockSportsStore()
	svc := application.NewSportsService(client, store, testLeagues, application.SportsOptions{Concurrency: 2}, discardLogger(), nil)

	err := svc.ScrapeAll(context.Background())

	assert.Error(t, err)
	_, getErr := store.Get(context.Background(), "soccer-filles-senior")
	assert.NoError(t, getErr)
	_, getErr = store.Get(context.Background(), "soccer-filles-junior")
	assert.ErrorIs(t, getErr, driven.ErrLeagueNotFound)
}

func TestStart_ZeroIntervalReturnsImmediately(t *testing.T) {
	client := &mockSportsClient{}
	svc := application.NewSportsService(client, newMockSportsStore(), testLeagues, application.SportsOptions{}, discardLogger(), nil)

	svc.Start(context.Background())

	assert.Zero(t, client.calls.Load())
}

func TestStart_StopsOnCancelWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &mockSportsClient{}
	svc := application.NewSportsService(client, newMockSportsStore(), testLeagues,
		application.SportsOptions{Interval: 10 * time.Millisecond, Concurrency: 2}, discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return client.calls.Load() >= 4 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
