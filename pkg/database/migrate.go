package database

import (
	"fmt"
	"raidlog/pkg/database/models"

	"gorm.io/gorm"
)

// RunMigrations migrates every model and creates the custom indexes.
// The order matters: the event tables reference reports, fights and players.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Report{},
		&models.Fight{},
		&models.Player{},
		&models.CastEvent{},
		&models.BuffEvent{},
		&models.DamageEvent{},
		&models.HealEvent{},
		&models.DeathEvent{},
		&models.PlayerFightStat{},
	)
	if err != nil {
		return fmt.Errorf("couldn't migrate the models: %w", err)
	}

	if err := CreateCustomIndexes(db); err != nil {
		return err
	}

	return nil
}
