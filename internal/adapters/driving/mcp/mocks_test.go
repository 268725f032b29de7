package mcp

import (
	"context"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// Ensure mocks implement the interfaces.
var (
	_ driving.SearchService = (*mockSearchService)(nil)
	_ driving.RecordService = (*mockRecordService)(nil)
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response  *domain.SearchResponse
	layout    domain.PageLayout
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Outcome: domain.OutcomeInitial}, nil
	}
	return m.response, nil
}

func (m *mockSearchService) Browse(_ context.Context, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockSearchService) Layout(_, _ int) domain.PageLayout {
	return m.layout
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records []domain.Record
	record  *domain.Record
	err     error
}

func (m *mockRecordService) List(_ context.Context) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockRecordService) Get(_ context.Context, _ string) (*domain.Record, error) {
	return m.record, m.err
}

func (m *mockRecordService) Reload(_ context.Context) error {
	return m.err
}

func (m *mockRecordService) Loaded() bool {
	return true
}

func (m *mockRecordService) Import(_ context.Context, _ []domain.Record, _ bool) error {
	return m.err
}
