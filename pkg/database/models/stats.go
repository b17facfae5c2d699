package models

// Database model for the per fight per player totals.
// Built during ingestion from the same normalized batches that get persisted,
// so the summary always agrees with the stored events.
type PlayerFightStat struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index:idx_fight_player,unique"`
	PlayerID uint   `gorm:"not null;index:idx_fight_player,unique"`

	DamageDone  float64
	HealingDone float64

	// Foreign keys.
	Report Report `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight  Fight  `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}
