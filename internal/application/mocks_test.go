package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockPartialSource struct {
	mu       sync.Mutex
	partials map[string]string
	err      error
	refs     []string
}

func (m *mockPartialSource) FetchPartial(_ context.Context, ref string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs = append(m.refs, ref)
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.partials[ref]
	if !ok {
		return nil, driven.ErrAssetNotFound
	}
	return []byte(data), nil
}

type mockStaffSource struct {
	records []model.StaffRecord
	err     error
	refs    []string
}

func (m *mockStaffSource) LoadStaff(_ context.Context, ref string) ([]model.StaffRecord, error) {
	m.refs = append(m.refs, ref)
	return m.records, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
