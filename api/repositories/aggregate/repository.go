package aggregate

import (
	"errors"

	"raidlog/pkg/database/models"

	"gorm.io/gorm"
)

// One summary row: the totals of a player on a single fight.
type PlayerFightRow struct {
	PlayerName string
	FightName  string
	Damage     float64
	Healing    float64
}

// Public interface of the aggregation repository.
type AggregateRepository interface {
	ReportExists(reportCode string) (bool, error)
	GetPlayerFightRows(reportCode string, playerNames []string, bossNames []string) ([]PlayerFightRow, error)
}

// Repository handler for the aggregation queries.
type aggregateRepository struct {
	db *gorm.DB
}

// Create a instance of the aggregate repository.
func NewAggregateRepository(db *gorm.DB) (AggregateRepository, error) {
	if db == nil {
		return nil, errors.New("missing db connection")
	}
	return &aggregateRepository{db: db}, nil
}

// ReportExists tells if a report code was ingested.
func (as *aggregateRepository) ReportExists(reportCode string) (bool, error) {
	var count int64

	result := as.db.Model(&models.Report{}).
		Where("report_code = ?", reportCode).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// GetPlayerFightRows reads the per fight totals of the named players
// straight from the summary table, one row per player and fight pair.
func (as *aggregateRepository) GetPlayerFightRows(reportCode string, playerNames []string, bossNames []string) ([]PlayerFightRow, error) {
	if len(playerNames) == 0 {
		return nil, nil
	}

	query := as.db.Model(&models.PlayerFightStat{}).
		Select(
			"players.name AS player_name",
			"fights.name AS fight_name",
			"SUM(player_fight_stats.damage_done) AS damage",
			"SUM(player_fight_stats.healing_done) AS healing",
		).
		Joins("JOIN players ON players.id = player_fight_stats.player_id").
		Joins("JOIN fights ON fights.id = player_fight_stats.fight_id").
		Joins("JOIN reports ON reports.id = player_fight_stats.report_id").
		Where("reports.report_code = ?", reportCode).
		Where("players.name IN ?", playerNames)

	if len(bossNames) > 0 {
		query = query.Where("fights.name IN ?", bossNames)
	}

	var rows []PlayerFightRow
	result := query.
		Group("players.name").
		Group("fights.name").
		Scan(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
