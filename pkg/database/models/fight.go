package models

// Database model for a single encounter pull within a report.
type Fight struct {
	ID       uint `gorm:"primaryKey"`
	ReportID uint `gorm:"not null;index:idx_report_wcl_fight,unique"`

	// The fight id from the WCL API. Only unique within the owning report.
	WclFightID int `gorm:"not null;index:idx_report_wcl_fight,unique"`

	Name string `gorm:"index"`

	// 0 means a trash fight, everything else is a boss encounter.
	EncounterID int `gorm:"index"`

	// Absolute times and offsets relative to the report start, in milliseconds.
	StartTimeMs   int64
	EndTimeMs     int64
	StartOffsetMs int64 `gorm:"not null"`
	EndOffsetMs   int64 `gorm:"not null"`

	Kill             *bool
	Difficulty       *int
	BossPercentage   *float64
	AverageItemLevel *float64
}
