package report

import (
	"errors"
	"sort"

	"raidlog/api/dto"
	"raidlog/pkg/database/models"

	"gorm.io/gorm"
)

// Public interface of the report repository.
type ReportRepository interface {
	GetDetailedReportByCode(reportCode string) (*models.Report, error)
	GetFightByCodeAndWclID(reportCode string, wclFightID int) (*models.Fight, error)
	GetFightEvents(fightID uint, kinds []string) ([]dto.FightEvent, error)
	GetReports(limit int, offset int) ([]models.Report, error)
	DeleteReportByCode(reportCode string) (bool, error)
}

// Repository handler for the read side of the reports.
type reportRepository struct {
	db *gorm.DB
}

// Create a instance of the report repository.
func NewReportRepository(db *gorm.DB) (ReportRepository, error) {
	if db == nil {
		return nil, errors.New("missing db connection")
	}
	return &reportRepository{db: db}, nil
}

// GetDetailedReportByCode returns a report with the fights and players
// preloaded, nil when the code was never ingested.
func (rs *reportRepository) GetDetailedReportByCode(reportCode string) (*models.Report, error) {
	var report models.Report

	result := rs.db.
		Preload("Fights", func(db *gorm.DB) *gorm.DB {
			return db.Order("fights.start_offset_ms ASC")
		}).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("players.name ASC")
		}).
		Where("report_code = ?", reportCode).
		First(&report)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &report, nil
}

// GetFightByCodeAndWclID returns one fight of a report by the external
// fight id, nil when either the report or the fight doesn't exist.
func (rs *reportRepository) GetFightByCodeAndWclID(reportCode string, wclFightID int) (*models.Fight, error) {
	var fight models.Fight

	result := rs.db.
		Joins("JOIN reports ON reports.id = fights.report_id").
		Where("reports.report_code = ? AND fights.wcl_fight_id = ?", reportCode, wclFightID).
		First(&fight)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &fight, nil
}

// GetFightEvents returns the merged timeline of one fight, ordered by
// the timestamp. An empty kinds list means every kind.
func (rs *reportRepository) GetFightEvents(fightID uint, kinds []string) ([]dto.FightEvent, error) {
	wanted := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		wanted[kind] = true
	}
	include := func(kind string) bool {
		return len(wanted) == 0 || wanted[kind]
	}

	events := make([]dto.FightEvent, 0)

	if include("cast") {
		var casts []models.CastEvent
		if err := rs.db.Where("fight_id = ?", fightID).Find(&casts).Error; err != nil {
			return nil, err
		}
		for i := range casts {
			event := &casts[i]
			events = append(events, dto.FightEvent{
				Kind:           "cast",
				TimestampMs:    event.TimestampMs,
				AbilityGameID:  &event.AbilityGameID,
				SourcePlayerID: &event.SourcePlayerID,
				TargetPlayerID: event.TargetPlayerID,
			})
		}
	}

	if include("buff") {
		var buffs []models.BuffEvent
		if err := rs.db.Where("fight_id = ?", fightID).Find(&buffs).Error; err != nil {
			return nil, err
		}
		for i := range buffs {
			event := &buffs[i]
			events = append(events, dto.FightEvent{
				Kind:           "buff",
				TimestampMs:    event.TimestampMs,
				AbilityGameID:  &event.AbilityGameID,
				EventType:      &event.EventType,
				SourcePlayerID: event.SourcePlayerID,
				TargetPlayerID: &event.TargetPlayerID,
				Stack:          event.Stack,
			})
		}
	}

	if include("damage") {
		var damage []models.DamageEvent
		if err := rs.db.Where("fight_id = ?", fightID).Find(&damage).Error; err != nil {
			return nil, err
		}
		for i := range damage {
			event := &damage[i]
			events = append(events, dto.FightEvent{
				Kind:           "damage",
				TimestampMs:    event.TimestampMs,
				AbilityGameID:  &event.AbilityGameID,
				SourcePlayerID: &event.SourcePlayerID,
				TargetPlayerID: event.TargetPlayerID,
				TargetNpcID:    event.TargetNpcID,
				HitType:        &event.HitType,
				Amount:         &event.Amount,
				Mitigated:      &event.Mitigated,
				Absorbed:       &event.Absorbed,
				Overkill:       &event.Overkill,
			})
		}
	}

	if include("heal") {
		var heals []models.HealEvent
		if err := rs.db.Where("fight_id = ?", fightID).Find(&heals).Error; err != nil {
			return nil, err
		}
		for i := range heals {
			event := &heals[i]
			events = append(events, dto.FightEvent{
				Kind:           "heal",
				TimestampMs:    event.TimestampMs,
				AbilityGameID:  &event.AbilityGameID,
				SourcePlayerID: &event.SourcePlayerID,
				TargetPlayerID: event.TargetPlayerID,
				TargetNpcID:    event.TargetNpcID,
				HitType:        &event.HitType,
				Amount:         &event.Amount,
				Overheal:       &event.Overheal,
				Absorbed:       &event.Absorbed,
			})
		}
	}

	if include("death") {
		var deaths []models.DeathEvent
		if err := rs.db.Where("fight_id = ?", fightID).Find(&deaths).Error; err != nil {
			return nil, err
		}
		for i := range deaths {
			event := &deaths[i]
			events = append(events, dto.FightEvent{
				Kind:                "death",
				TimestampMs:         event.TimestampMs,
				AbilityGameID:       event.AbilityGameID,
				TargetPlayerID:      event.TargetPlayerID,
				TargetNpcID:         event.TargetNpcID,
				KillingBlowPlayerID: event.KillingBlowPlayerID,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampMs < events[j].TimestampMs
	})

	return events, nil
}

// GetReports returns a page of reports, newest first.
func (rs *reportRepository) GetReports(limit int, offset int) ([]models.Report, error) {
	var reports []models.Report

	result := rs.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// DeleteReportByCode removes a report and all of its data, returning
// whether anything was there to delete.
func (rs *reportRepository) DeleteReportByCode(reportCode string) (bool, error) {
	result := rs.db.Where("report_code = ?", reportCode).Delete(&models.Report{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
