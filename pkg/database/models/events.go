package models

// Database model for a player cast event.
type CastEvent struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index"`

	// Milliseconds relative to the report start.
	TimestampMs   int64 `gorm:"not null;index"`
	AbilityGameID int   `gorm:"not null;index"`

	SourcePlayerID uint  `gorm:"not null;index"`
	TargetPlayerID *uint `gorm:"index"`

	// Foreign keys.
	Report       Report  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight        Fight   `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	SourcePlayer Player  `gorm:"foreignKey:SourcePlayerID;constraint:OnDelete:CASCADE"`
	TargetPlayer *Player `gorm:"foreignKey:TargetPlayerID;constraint:OnDelete:CASCADE"`
}

// Database model for a buff or debuff transition event.
// The event type holds the sub kind, e.g. 'applybuff' or 'removedebuffstack'.
type BuffEvent struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index"`

	TimestampMs   int64  `gorm:"not null;index"`
	EventType     string `gorm:"type:varchar(24);not null;index"`
	AbilityGameID int    `gorm:"not null;index"`

	SourcePlayerID *uint `gorm:"index"`
	TargetPlayerID uint  `gorm:"not null;index"`
	Stack          *int

	// Foreign keys.
	Report       Report  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight        Fight   `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	SourcePlayer *Player `gorm:"foreignKey:SourcePlayerID;constraint:OnDelete:CASCADE"`
	TargetPlayer Player  `gorm:"foreignKey:TargetPlayerID;constraint:OnDelete:CASCADE"`
}

// Database model for a damage event.
// The target is either a player or a raw NPC id, never both.
type DamageEvent struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index"`

	TimestampMs   int64 `gorm:"not null;index"`
	AbilityGameID int   `gorm:"not null;index"`

	SourcePlayerID uint  `gorm:"not null;index"`
	TargetPlayerID *uint `gorm:"index"`
	TargetNpcID    *int  `gorm:"index"`

	HitType   int   `gorm:"not null"`
	Amount    int64 `gorm:"not null"`
	Mitigated int64 `gorm:"default:0"`
	Absorbed  int64 `gorm:"default:0"`
	Overkill  int64 `gorm:"default:0"`

	// Foreign keys.
	Report       Report  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight        Fight   `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	SourcePlayer Player  `gorm:"foreignKey:SourcePlayerID;constraint:OnDelete:CASCADE"`
	TargetPlayer *Player `gorm:"foreignKey:TargetPlayerID;constraint:OnDelete:CASCADE"`
}

// Database model for a heal event.
type HealEvent struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index"`

	TimestampMs   int64 `gorm:"not null;index"`
	AbilityGameID int   `gorm:"not null;index"`

	SourcePlayerID uint  `gorm:"not null;index"`
	TargetPlayerID *uint `gorm:"index"`
	TargetNpcID    *int  `gorm:"index"`

	HitType  int   `gorm:"not null"`
	Amount   int64 `gorm:"not null"`
	Overheal int64 `gorm:"default:0"`
	Absorbed int64 `gorm:"default:0"`

	// Foreign keys.
	Report       Report  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight        Fight   `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	SourcePlayer Player  `gorm:"foreignKey:SourcePlayerID;constraint:OnDelete:CASCADE"`
	TargetPlayer *Player `gorm:"foreignKey:TargetPlayerID;constraint:OnDelete:CASCADE"`
}

// Database model for a death event.
type DeathEvent struct {
	ID       uint64 `gorm:"primaryKey"`
	ReportID uint   `gorm:"not null;index"`
	FightID  uint   `gorm:"not null;index"`

	TimestampMs int64 `gorm:"not null;index"`

	TargetPlayerID *uint `gorm:"index"`
	TargetNpcID    *int  `gorm:"index"`

	// The killing blow, when the log carries it.
	AbilityGameID       *int  `gorm:"index"`
	KillingBlowPlayerID *uint `gorm:"index"`

	// Foreign keys.
	Report            Report  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Fight             Fight   `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE"`
	TargetPlayer      *Player `gorm:"foreignKey:TargetPlayerID;constraint:OnDelete:CASCADE"`
	KillingBlowPlayer *Player `gorm:"foreignKey:KillingBlowPlayerID;constraint:OnDelete:CASCADE"`
}
