package database

import (
	"fmt"
	"raidlog/pkg/config"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database connection.
// Return the connection pool.
func NewConnection() (*gorm.DB, error) {

	// Create the database instance.
	db, err := gorm.Open(postgres.Open(config.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get the SQL database itself.
	sqlDb, sqlErr := db.DB()

	// Verify if could get the connection.
	if sqlErr != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %v", err)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(100)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(time.Hour)
	sqlDb.SetConnMaxIdleTime(time.Hour)

	// Test the connection
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, err
}

// CreateCustomIndexes creates any necessary custom index.
func CreateCustomIndexes(db *gorm.DB) error {
	// Composite index to speed up the per fight event scans ordered by time.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_cast_events_fight_ts ON cast_events (fight_id, timestamp_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_buff_events_fight_ts ON buff_events (fight_id, timestamp_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_damage_events_fight_ts ON damage_events (fight_id, timestamp_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_heal_events_fight_ts ON heal_events (fight_id, timestamp_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_death_events_fight_ts ON death_events (fight_id, timestamp_ms);`,
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("couldn't create the custom indexes: %w", err)
		}
	}

	return nil
}
