package dto

// One event of a fight timeline. Only the fields of the given kind are
// filled, the rest stays null on the JSON output.
type FightEvent struct {
	Kind                string  `json:"kind"`
	TimestampMs         int64   `json:"timestamp_ms"`
	AbilityGameID       *int    `json:"ability_game_id,omitempty"`
	EventType           *string `json:"event_type,omitempty"`
	SourcePlayerID      *uint   `json:"source_player_id,omitempty"`
	TargetPlayerID      *uint   `json:"target_player_id,omitempty"`
	TargetNpcID         *int    `json:"target_npc_id,omitempty"`
	Stack               *int    `json:"stack,omitempty"`
	HitType             *int    `json:"hit_type,omitempty"`
	Amount              *int64  `json:"amount,omitempty"`
	Mitigated           *int64  `json:"mitigated,omitempty"`
	Absorbed            *int64  `json:"absorbed,omitempty"`
	Overkill            *int64  `json:"overkill,omitempty"`
	Overheal            *int64  `json:"overheal,omitempty"`
	KillingBlowPlayerID *uint   `json:"killing_blow_player_id,omitempty"`
}
