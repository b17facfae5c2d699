package ingestion

import (
	"raidlog/pkg/database/models"
	"sort"
)

// BuildFightStats rolls the normalized damage and heal batches up into
// the per fight per player summary rows the aggregation queries read.
func BuildFightStats(reportID uint, batches *EventBatches) []*models.PlayerFightStat {
	type statKey struct {
		fightID  uint
		playerID uint
	}

	totals := make(map[statKey]*models.PlayerFightStat)

	get := func(fightID uint, playerID uint) *models.PlayerFightStat {
		key := statKey{fightID: fightID, playerID: playerID}
		stat, exists := totals[key]
		if !exists {
			stat = &models.PlayerFightStat{
				ReportID: reportID,
				FightID:  fightID,
				PlayerID: playerID,
			}
			totals[key] = stat
		}
		return stat
	}

	for _, event := range batches.Damage {
		stat := get(event.FightID, event.SourcePlayerID)
		stat.DamageDone += float64(event.Amount)
	}

	for _, event := range batches.Heals {
		stat := get(event.FightID, event.SourcePlayerID)
		stat.HealingDone += float64(event.Amount)
	}

	stats := make([]*models.PlayerFightStat, 0, len(totals))
	for _, stat := range totals {
		stats = append(stats, stat)
	}

	// Deterministic insert order.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].FightID != stats[j].FightID {
			return stats[i].FightID < stats[j].FightID
		}
		return stats[i].PlayerID < stats[j].PlayerID
	})

	return stats
}
