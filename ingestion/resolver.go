package ingestion

import (
	"fmt"
	reportfetcher "raidlog/fetcher/data/report"
	"raidlog/ingestion/repositories"
	"raidlog/pkg/database/models"
	"raidlog/pkg/logger"
)

// LookupMaps translates the per report WCL ids into the internal rows.
// Both maps are built once, before any event is normalized.
type LookupMaps struct {
	FightByWclID    map[int]*models.Fight
	PlayerByActorID map[int]*models.Player
}

// Player resolves a optional actor id into a player, nil when the id is
// absent or doesn't belong to a known player.
func (m *LookupMaps) Player(actorID *int) *models.Player {
	if actorID == nil {
		return nil
	}
	return m.PlayerByActorID[*actorID]
}

// Fight resolves a optional fight id, nil when absent or unknown.
func (m *LookupMaps) Fight(fightID *int) *models.Fight {
	if fightID == nil {
		return nil
	}
	return m.FightByWclID[*fightID]
}

// ResolveIdentities creates the fights and players of the report and
// builds the lookup maps used by the normalizer.
// Runs single threaded per report, which keeps get-or-create safe.
func ResolveIdentities(
	repo repositories.ReportRepository,
	report *models.Report,
	fights []reportfetcher.RawFight,
	actors []reportfetcher.RawActor,
	log *logger.IngestLogger,
) (*LookupMaps, error) {
	maps := &LookupMaps{
		FightByWclID:    make(map[int]*models.Fight, len(fights)),
		PlayerByActorID: make(map[int]*models.Player, len(actors)),
	}

	for _, raw := range fights {
		// A entry without a id can't be referenced by any event.
		if raw.ID == nil {
			log.Warnf("Skipping a fight without id on report %s", report.ReportCode)
			continue
		}

		// Already created earlier in this pass, just reuse it.
		if _, exists := maps.FightByWclID[*raw.ID]; exists {
			continue
		}

		fight := &models.Fight{
			ReportID:         report.ID,
			WclFightID:       *raw.ID,
			Name:             raw.Name,
			EncounterID:      raw.EncounterID,
			StartTimeMs:      raw.StartTime,
			EndTimeMs:        raw.EndTime,
			StartOffsetMs:    raw.StartTime - report.StartTimeMs,
			EndOffsetMs:      raw.EndTime - report.StartTimeMs,
			Kill:             raw.Kill,
			Difficulty:       raw.Difficulty,
			BossPercentage:   raw.BossPercentage,
			AverageItemLevel: raw.AverageItemLevel,
		}

		if err := repo.CreateFight(fight); err != nil {
			return nil, fmt.Errorf("couldn't create the fight %d: %w", *raw.ID, err)
		}

		maps.FightByWclID[*raw.ID] = fight
	}

	for _, raw := range actors {
		// Only player actors become participants. NPCs and pets are
		// referenced by their raw id on the events instead.
		if raw.Type != "Player" {
			continue
		}

		if raw.ID == nil {
			log.Warnf("Skipping a actor without id on report %s", report.ReportCode)
			continue
		}

		if _, exists := maps.PlayerByActorID[*raw.ID]; exists {
			continue
		}

		player, err := repo.GetOrCreatePlayer(&models.Player{
			ReportID:   report.ID,
			WclActorID: *raw.ID,
			Name:       raw.Name,
			Server:     raw.Server,
			Class:      raw.SubType,
		})
		if err != nil {
			return nil, fmt.Errorf("couldn't resolve the actor %d: %w", *raw.ID, err)
		}

		maps.PlayerByActorID[*raw.ID] = player
	}

	return maps, nil
}
