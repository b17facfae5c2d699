package models

import (
	"time"
)

// Database model for one ingested combat log report.
type Report struct {
	ID         uint   `gorm:"primaryKey"`
	ReportCode string `gorm:"type:varchar(32);uniqueIndex;not null"`
	Title      string
	Owner      string
	ZoneID     int
	ZoneName   string

	// Absolute timestamps, in milliseconds.
	StartTimeMs int64 `gorm:"not null"`
	EndTimeMs   int64 `gorm:"not null"`

	CreatedAt time.Time

	// Everything owned by the report is removed with it.
	Fights  []Fight  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Players []Player `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}
