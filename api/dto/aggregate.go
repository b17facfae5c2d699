package dto

// Totals of one player inside a caller defined group.
type PlayerGroupStats struct {
	PlayerName   string   `json:"player_name"`
	FightNames   []string `json:"fight_names"`
	TotalDamage  float64  `json:"total_damage"`
	TotalHealing float64  `json:"total_healing"`
}

// Response of the aggregation endpoint, keyed by the group name.
type GroupStatsResponse struct {
	GroupStats map[string][]PlayerGroupStats `json:"group_stats"`
}
