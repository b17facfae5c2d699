package ingestion

import (
	"testing"

	reportfetcher "raidlog/fetcher/data/report"
	"raidlog/pkg/database/models"
	"raidlog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Write repository backed by slices, assigning ids like the database.
type fakeWriteRepository struct {
	nextFightID  uint
	nextPlayerID uint
	fights       []*models.Fight
	players      []*models.Player
}

func newFakeWriteRepository() *fakeWriteRepository {
	return &fakeWriteRepository{nextFightID: 10, nextPlayerID: 50}
}

func (f *fakeWriteRepository) DeleteReportByCode(reportCode string) error { return nil }
func (f *fakeWriteRepository) CreateReport(report *models.Report) error  { return nil }

func (f *fakeWriteRepository) CreateFight(fight *models.Fight) error {
	fight.ID = f.nextFightID
	f.nextFightID++
	f.fights = append(f.fights, fight)
	return nil
}

func (f *fakeWriteRepository) GetOrCreatePlayer(player *models.Player) (*models.Player, error) {
	for _, existing := range f.players {
		if existing.ReportID == player.ReportID && existing.WclActorID == player.WclActorID {
			return existing, nil
		}
	}

	player.ID = f.nextPlayerID
	f.nextPlayerID++
	f.players = append(f.players, player)
	return player, nil
}

func (f *fakeWriteRepository) CreateCastEventsBatch(events []*models.CastEvent) error     { return nil }
func (f *fakeWriteRepository) CreateBuffEventsBatch(events []*models.BuffEvent) error     { return nil }
func (f *fakeWriteRepository) CreateDamageEventsBatch(events []*models.DamageEvent) error { return nil }
func (f *fakeWriteRepository) CreateHealEventsBatch(events []*models.HealEvent) error     { return nil }
func (f *fakeWriteRepository) CreateDeathEventsBatch(events []*models.DeathEvent) error   { return nil }
func (f *fakeWriteRepository) CreatePlayerFightStatsBatch(stats []*models.PlayerFightStat) error {
	return nil
}

func testLogger(t *testing.T) *logger.IngestLogger {
	t.Helper()
	log, err := logger.CreateLogger()
	require.NoError(t, err)
	return log
}

func TestResolveIdentities(t *testing.T) {
	repo := newFakeWriteRepository()
	report := &models.Report{ID: 7, ReportCode: "ABC123", StartTimeMs: 1000}
	server := "Proudmoore"

	fights := []reportfetcher.RawFight{
		{ID: intPtr(1), Name: "Boss1", EncounterID: 2902, StartTime: 1100, EndTime: 1900},
		{ID: intPtr(2), Name: "Trash", EncounterID: 0, StartTime: 2000, EndTime: 2200},
		{ID: nil, Name: "Broken"},
		{ID: intPtr(1), Name: "Boss1 again"},
	}
	actors := []reportfetcher.RawActor{
		{ID: intPtr(5), Name: "Aya", Type: "Player", SubType: "Mage", Server: &server},
		{ID: intPtr(6), Name: "Brin", Type: "Player", SubType: "Priest"},
		{ID: intPtr(7), Name: "Boss", Type: "NPC", SubType: "Boss"},
		{ID: intPtr(8), Name: "Imp", Type: "Pet"},
		{ID: nil, Name: "Nameless", Type: "Player"},
	}

	maps, err := ResolveIdentities(repo, report, fights, actors, testLogger(t))
	require.NoError(t, err)

	// Fights without a id are skipped, repeated ids reuse the first row.
	require.Len(t, repo.fights, 2)
	assert.Len(t, maps.FightByWclID, 2)

	boss := maps.Fight(intPtr(1))
	require.NotNil(t, boss)
	assert.Equal(t, "Boss1", boss.Name)
	assert.Equal(t, uint(7), boss.ReportID)
	assert.Equal(t, int64(100), boss.StartOffsetMs)
	assert.Equal(t, int64(900), boss.EndOffsetMs)

	// Only the player actors become rows.
	require.Len(t, repo.players, 2)
	assert.Len(t, maps.PlayerByActorID, 2)

	aya := maps.Player(intPtr(5))
	require.NotNil(t, aya)
	assert.Equal(t, "Mage", aya.Class)
	require.NotNil(t, aya.Server)
	assert.Equal(t, "Proudmoore", *aya.Server)

	assert.Nil(t, maps.Player(intPtr(7)), "NPCs must not resolve to players")
	assert.Nil(t, maps.Player(nil))
	assert.Nil(t, maps.Fight(intPtr(99)))
}
