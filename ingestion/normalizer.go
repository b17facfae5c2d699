package ingestion

import (
	reportfetcher "raidlog/fetcher/data/report"
	"raidlog/pkg/database/models"
)

// EventBatches holds the normalized events, one batch per kind, ready
// for the bulk inserts.
type EventBatches struct {
	Casts  []*models.CastEvent
	Buffs  []*models.BuffEvent
	Damage []*models.DamageEvent
	Heals  []*models.HealEvent
	Deaths []*models.DeathEvent
}

// Total returns how many events were normalized.
func (b *EventBatches) Total() int {
	return len(b.Casts) + len(b.Buffs) + len(b.Damage) + len(b.Heals) + len(b.Deaths)
}

// SkipCounts tracks why raw events were dropped.
// Individual drops are not errors, only the counters surface in the log.
type SkipCounts struct {
	UnknownType      int
	MissingTimestamp int
	MissingAbility   int
	UnknownFight     int
	MissingField     int
}

// Total returns how many raw events were dropped.
func (s SkipCounts) Total() int {
	return s.UnknownType + s.MissingTimestamp + s.MissingAbility + s.UnknownFight + s.MissingField
}

// The buff transition sub kinds the API emits.
var buffEventTypes = map[string]bool{
	"applybuff":         true,
	"removebuff":        true,
	"applybuffstack":    true,
	"removebuffstack":   true,
	"applydebuff":       true,
	"removedebuff":      true,
	"applydebuffstack":  true,
	"removedebuffstack": true,
}

// NormalizeEvents classifies every raw event and translates its ids
// through the lookup maps. Pure and stateless given the maps: one linear
// pass, no I/O, malformed events are counted and dropped.
func NormalizeEvents(reportID uint, raw []reportfetcher.RawEvent, maps *LookupMaps) (*EventBatches, SkipCounts) {
	batches := &EventBatches{}
	var skips SkipCounts

	for i := range raw {
		normalizeEvent(reportID, &raw[i], maps, batches, &skips)
	}

	return batches, skips
}

// Normalize a single raw event into its kind batch.
func normalizeEvent(reportID uint, raw *reportfetcher.RawEvent, maps *LookupMaps, batches *EventBatches, skips *SkipCounts) {
	// Universal checks, before any kind dispatch.
	if raw.Timestamp == nil {
		skips.MissingTimestamp++
		return
	}
	if raw.AbilityGameID == nil {
		skips.MissingAbility++
		return
	}

	if !knownEventType(raw.Type) {
		skips.UnknownType++
		return
	}

	// Events of fights outside the processed set are dropped, they can't
	// reference a fight row.
	fight := maps.Fight(raw.Fight)
	if fight == nil {
		skips.UnknownFight++
		return
	}

	source := maps.Player(raw.SourceID)
	target := maps.Player(raw.TargetID)

	switch {
	case raw.Type == "cast":
		if source == nil {
			skips.MissingField++
			return
		}

		batches.Casts = append(batches.Casts, &models.CastEvent{
			ReportID:       reportID,
			FightID:        fight.ID,
			TimestampMs:    *raw.Timestamp,
			AbilityGameID:  *raw.AbilityGameID,
			SourcePlayerID: source.ID,
			TargetPlayerID: playerID(target),
		})

	case buffEventTypes[raw.Type]:
		if target == nil {
			skips.MissingField++
			return
		}

		batches.Buffs = append(batches.Buffs, &models.BuffEvent{
			ReportID:       reportID,
			FightID:        fight.ID,
			TimestampMs:    *raw.Timestamp,
			EventType:      raw.Type,
			AbilityGameID:  *raw.AbilityGameID,
			SourcePlayerID: playerID(source),
			TargetPlayerID: target.ID,
			Stack:          raw.Stack,
		})

	case raw.Type == "damage":
		if source == nil || raw.HitType == nil || raw.Amount == nil {
			skips.MissingField++
			return
		}

		// Exactly one target representation: the player when it
		// resolves, the raw NPC id otherwise.
		targetNpc := raw.TargetNPCID
		if target != nil {
			targetNpc = nil
		} else if targetNpc == nil {
			skips.MissingField++
			return
		}

		batches.Damage = append(batches.Damage, &models.DamageEvent{
			ReportID:       reportID,
			FightID:        fight.ID,
			TimestampMs:    *raw.Timestamp,
			AbilityGameID:  *raw.AbilityGameID,
			SourcePlayerID: source.ID,
			TargetPlayerID: playerID(target),
			TargetNpcID:    targetNpc,
			HitType:        *raw.HitType,
			Amount:         *raw.Amount,
			Mitigated:      orZero(raw.Mitigated),
			Absorbed:       orZero(raw.Absorbed),
			Overkill:       orZero(raw.Overkill),
		})

	case raw.Type == "heal":
		if source == nil || raw.HitType == nil || raw.Amount == nil {
			skips.MissingField++
			return
		}

		targetNpc := raw.TargetNPCID
		if target != nil {
			targetNpc = nil
		} else if targetNpc == nil {
			skips.MissingField++
			return
		}

		batches.Heals = append(batches.Heals, &models.HealEvent{
			ReportID:       reportID,
			FightID:        fight.ID,
			TimestampMs:    *raw.Timestamp,
			AbilityGameID:  *raw.AbilityGameID,
			SourcePlayerID: source.ID,
			TargetPlayerID: playerID(target),
			TargetNpcID:    targetNpc,
			HitType:        *raw.HitType,
			Amount:         *raw.Amount,
			Overheal:       orZero(raw.Overheal),
			Absorbed:       orZero(raw.Absorbed),
		})

	case raw.Type == "death":
		targetNpc := raw.TargetNPCID
		if target != nil {
			targetNpc = nil
		} else if targetNpc == nil {
			// A death needs at least one target representation.
			skips.MissingField++
			return
		}

		killingBlow := maps.Player(raw.KillingBlowActor)

		batches.Deaths = append(batches.Deaths, &models.DeathEvent{
			ReportID:            reportID,
			FightID:             fight.ID,
			TimestampMs:         *raw.Timestamp,
			TargetPlayerID:      playerID(target),
			TargetNpcID:         targetNpc,
			AbilityGameID:       raw.AbilityGameID,
			KillingBlowPlayerID: playerID(killingBlow),
		})
	}
}

// knownEventType tells if the type tag maps to one of the five kinds.
func knownEventType(eventType string) bool {
	switch eventType {
	case "cast", "damage", "heal", "death":
		return true
	}
	return buffEventTypes[eventType]
}

// playerID returns a nullable reference for a optional player.
func playerID(player *models.Player) *uint {
	if player == nil {
		return nil
	}
	return &player.ID
}

// orZero treats a missing quantity as 0.
func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
