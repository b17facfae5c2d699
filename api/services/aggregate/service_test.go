package aggregate

import (
	"context"
	"testing"

	"raidlog/api/cache"
	"raidlog/api/dto"
	"raidlog/api/filters"
	aggrepo "raidlog/api/repositories/aggregate"
	"raidlog/api/services/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *testutil.MockAggregateRepository) *AggregateService {
	return NewAggregateService(&AggregateServiceDeps{
		Repository: repo,
		MemCache:   cache.NewMemCache[map[string][]dto.PlayerGroupStats](),
	})
}

func TestGetGroupStats(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)
	repo.On("GetPlayerFightRows", "ABC123", []string{"A", "B"}, []string(nil)).Return([]aggrepo.PlayerFightRow{
		{PlayerName: "A", FightName: "Boss2", Damage: 50, Healing: 10},
		{PlayerName: "A", FightName: "Boss1", Damage: 100, Healing: 0},
		{PlayerName: "B", FightName: "Boss1", Damage: 30, Healing: 200},
	}, nil)

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {"A", "B"}},
	}

	result, found, err := service.GetGroupStats(context.Background(), "ABC123", request)

	require.NoError(t, err)
	assert.True(t, found)
	require.Contains(t, result, "g1")

	group := result["g1"]
	require.Len(t, group, 2)

	// Caller's member order is kept, fight names come back sorted.
	assert.Equal(t, "A", group[0].PlayerName)
	assert.Equal(t, []string{"Boss1", "Boss2"}, group[0].FightNames)
	assert.Equal(t, float64(150), group[0].TotalDamage)
	assert.Equal(t, float64(10), group[0].TotalHealing)

	assert.Equal(t, "B", group[1].PlayerName)
	assert.Equal(t, []string{"Boss1"}, group[1].FightNames)
	assert.Equal(t, float64(30), group[1].TotalDamage)
	assert.Equal(t, float64(200), group[1].TotalHealing)
}

func TestGetGroupStatsBossFilter(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)
	repo.On("GetPlayerFightRows", "ABC123", []string{"A"}, []string{"Boss2"}).Return([]aggrepo.PlayerFightRow{
		{PlayerName: "A", FightName: "Boss2", Damage: 50},
	}, nil)

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups:    map[string][]string{"g1": {"A"}},
		BossNames: []string{"Boss2"},
	}

	result, found, err := service.GetGroupStats(context.Background(), "ABC123", request)

	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, result["g1"], 1)
	assert.Equal(t, []string{"Boss2"}, result["g1"][0].FightNames)
	assert.Equal(t, float64(50), result["g1"][0].TotalDamage)
}

func TestGetGroupStatsRepeatedMembers(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)
	repo.On("GetPlayerFightRows", "ABC123", []string{"A"}, []string(nil)).Return([]aggrepo.PlayerFightRow{
		{PlayerName: "A", FightName: "Boss1", Damage: 100},
	}, nil)

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {"A", "A"}},
	}

	result, _, err := service.GetGroupStats(context.Background(), "ABC123", request)

	require.NoError(t, err)

	// A name listed twice yields one entry per listing.
	require.Len(t, result["g1"], 2)
	assert.Equal(t, result["g1"][0], result["g1"][1])
	assert.Equal(t, "A", result["g1"][0].PlayerName)
	assert.Equal(t, float64(100), result["g1"][0].TotalDamage)
}

func TestGetGroupStatsUnknownPlayersLeftOut(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)
	repo.On("GetPlayerFightRows", "ABC123", mock.Anything, mock.Anything).Return([]aggrepo.PlayerFightRow{
		{PlayerName: "A", FightName: "Boss1", Damage: 100},
	}, nil)

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {"A", "Ghost"}},
	}

	result, _, err := service.GetGroupStats(context.Background(), "ABC123", request)

	require.NoError(t, err)
	require.Len(t, result["g1"], 1)
	assert.Equal(t, "A", result["g1"][0].PlayerName)
}

func TestGetGroupStatsEmptyGroups(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {}, "g2": {}},
	}

	result, found, err := service.GetGroupStats(context.Background(), "ABC123", request)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []dto.PlayerGroupStats{}, result["g1"])
	assert.Equal(t, []dto.PlayerGroupStats{}, result["g2"])

	// No member names, no summary query.
	repo.AssertNotCalled(t, "GetPlayerFightRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetGroupStatsReportNotFound(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "MISSING").Return(false, nil)

	service := newTestService(repo)

	result, found, err := service.GetGroupStats(context.Background(), "MISSING", &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {"A"}},
	})

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, result)
}

func TestGetGroupStatsMemCacheHit(t *testing.T) {
	repo := new(testutil.MockAggregateRepository)
	repo.On("ReportExists", "ABC123").Return(true, nil)
	repo.On("GetPlayerFightRows", "ABC123", mock.Anything, mock.Anything).Return([]aggrepo.PlayerFightRow{
		{PlayerName: "A", FightName: "Boss1", Damage: 100},
	}, nil).Once()

	service := newTestService(repo)

	request := &filters.AggregateRequest{
		Groups: map[string][]string{"g1": {"A"}},
	}

	first, _, err := service.GetGroupStats(context.Background(), "ABC123", request)
	require.NoError(t, err)

	// Second call must come straight from the memory cache.
	second, _, err := service.GetGroupStats(context.Background(), "ABC123", request)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetPlayerFightRows", 1)
}
