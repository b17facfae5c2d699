package testutil

import (
	"context"
	"time"

	"raidlog/api/dto"
	aggrepo "raidlog/api/repositories/aggregate"
	"raidlog/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// Mock of the report read repository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetDetailedReportByCode(reportCode string) (*models.Report, error) {
	args := m.Called(reportCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) GetFightByCodeAndWclID(reportCode string, wclFightID int) (*models.Fight, error) {
	args := m.Called(reportCode, wclFightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fight), args.Error(1)
}

func (m *MockReportRepository) GetFightEvents(fightID uint, kinds []string) ([]dto.FightEvent, error) {
	args := m.Called(fightID, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FightEvent), args.Error(1)
}

func (m *MockReportRepository) GetReports(limit int, offset int) ([]models.Report, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) DeleteReportByCode(reportCode string) (bool, error) {
	args := m.Called(reportCode)
	return args.Bool(0), args.Error(1)
}

// Mock of the aggregation repository.
type MockAggregateRepository struct {
	mock.Mock
}

func (m *MockAggregateRepository) ReportExists(reportCode string) (bool, error) {
	args := m.Called(reportCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockAggregateRepository) GetPlayerFightRows(reportCode string, playerNames []string, bossNames []string) ([]aggrepo.PlayerFightRow, error) {
	args := m.Called(reportCode, playerNames, bossNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]aggrepo.PlayerFightRow), args.Error(1)
}

// Mock of the ingestion queue.
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(reportCode string) {
	m.Called(reportCode)
}

// Mock of the status reader.
type MockStatusReader struct {
	mock.Mock
}

func (m *MockStatusReader) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Mock of the shared Redis cache.
type MockRedisCache struct {
	mock.Mock
}

func (m *MockRedisCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
