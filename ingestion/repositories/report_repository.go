package repositories

import (
	"errors"
	"fmt"
	"raidlog/pkg/database/models"

	"gorm.io/gorm"
)

// ReportRepository defines the public interface for the ingestion writes.
// It is bound to a single gorm handle, so building it over a transaction
// makes every write of one ingestion pass atomic.
type ReportRepository interface {
	CreateBuffEventsBatch(events []*models.BuffEvent) error
	CreateCastEventsBatch(events []*models.CastEvent) error
	CreateDamageEventsBatch(events []*models.DamageEvent) error
	CreateDeathEventsBatch(events []*models.DeathEvent) error
	CreateFight(fight *models.Fight) error
	CreateHealEventsBatch(events []*models.HealEvent) error
	CreatePlayerFightStatsBatch(stats []*models.PlayerFightStat) error
	CreateReport(report *models.Report) error
	DeleteReportByCode(reportCode string) error
	GetOrCreatePlayer(player *models.Player) (*models.Player, error)
}

// Report repository structure.
type reportRepository struct {
	db *gorm.DB
}

// Create a report repository over the given handle.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// DeleteReportByCode removes any previous ingestion of the same code.
// The children rows go away through the cascade.
func (rr *reportRepository) DeleteReportByCode(reportCode string) error {
	return rr.db.Where("report_code = ?", reportCode).Delete(&models.Report{}).Error
}

// Simply create a report.
func (rr *reportRepository) CreateReport(report *models.Report) error {
	return rr.db.Create(&report).Error
}

// Create a single fight. The generated id must be available right away,
// every event of the fight references it.
func (rr *reportRepository) CreateFight(fight *models.Fight) error {
	return rr.db.Create(&fight).Error
}

// GetOrCreatePlayer returns the existing player for the (report, actor)
// pair, or creates it. Resolution runs single threaded per report, so a
// plain check then insert is enough here.
func (rr *reportRepository) GetOrCreatePlayer(player *models.Player) (*models.Player, error) {
	var existing models.Player
	err := rr.db.
		Where("report_id = ? AND wcl_actor_id = ?", player.ReportID, player.WclActorID).
		First(&existing).Error

	if err == nil {
		return &existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("couldn't look up the player: %w", err)
	}

	if err := rr.db.Create(player).Error; err != nil {
		return nil, fmt.Errorf("couldn't create the player: %w", err)
	}

	return player, nil
}

// Create the cast events in batches of 1000.
func (rr *reportRepository) CreateCastEventsBatch(events []*models.CastEvent) error {
	if len(events) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&events, 1000).Error
}

// Create the buff events in batches of 1000.
func (rr *reportRepository) CreateBuffEventsBatch(events []*models.BuffEvent) error {
	if len(events) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&events, 1000).Error
}

// Create the damage events in batches of 1000.
func (rr *reportRepository) CreateDamageEventsBatch(events []*models.DamageEvent) error {
	if len(events) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&events, 1000).Error
}

// Create the heal events in batches of 1000.
func (rr *reportRepository) CreateHealEventsBatch(events []*models.HealEvent) error {
	if len(events) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&events, 1000).Error
}

// Create the death events in batches of 1000.
func (rr *reportRepository) CreateDeathEventsBatch(events []*models.DeathEvent) error {
	if len(events) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&events, 1000).Error
}

// Create the per fight stats in batches of 1000.
func (rr *reportRepository) CreatePlayerFightStatsBatch(stats []*models.PlayerFightStat) error {
	if len(stats) == 0 {
		return nil
	}
	return rr.db.CreateInBatches(&stats, 1000).Error
}
