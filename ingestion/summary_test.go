package ingestion

import (
	"testing"

	"raidlog/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFightStats(t *testing.T) {
	batches := &EventBatches{
		Damage: []*models.DamageEvent{
			{FightID: 10, SourcePlayerID: 50, Amount: 100},
			{FightID: 10, SourcePlayerID: 50, Amount: 150},
			{FightID: 10, SourcePlayerID: 60, Amount: 30},
			{FightID: 11, SourcePlayerID: 50, Amount: 70},
		},
		Heals: []*models.HealEvent{
			{FightID: 10, SourcePlayerID: 60, Amount: 400},
		},
	}

	stats := BuildFightStats(7, batches)

	require.Len(t, stats, 3)

	// Sorted by fight then player.
	assert.Equal(t, uint(10), stats[0].FightID)
	assert.Equal(t, uint(50), stats[0].PlayerID)
	assert.Equal(t, float64(250), stats[0].DamageDone)
	assert.Equal(t, float64(0), stats[0].HealingDone)

	assert.Equal(t, uint(10), stats[1].FightID)
	assert.Equal(t, uint(60), stats[1].PlayerID)
	assert.Equal(t, float64(30), stats[1].DamageDone)
	assert.Equal(t, float64(400), stats[1].HealingDone)

	assert.Equal(t, uint(11), stats[2].FightID)
	assert.Equal(t, uint(50), stats[2].PlayerID)
	assert.Equal(t, float64(70), stats[2].DamageDone)

	for _, stat := range stats {
		assert.Equal(t, uint(7), stat.ReportID)
	}
}

func TestBuildFightStatsEmpty(t *testing.T) {
	stats := BuildFightStats(7, &EventBatches{})
	assert.Empty(t, stats)
}
