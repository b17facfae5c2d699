package models

// Database model for a player actor appearing in a report.
type Player struct {
	ID       uint `gorm:"primaryKey"`
	ReportID uint `gorm:"not null;index:idx_report_wcl_actor,unique"`

	// The actor id from the WCL API. Only unique within the owning report.
	WclActorID int `gorm:"not null;index:idx_report_wcl_actor,unique"`

	Name   string `gorm:"type:varchar(64);not null;index"`
	Server *string
	Class  string `gorm:"type:varchar(32)"`
}
