package dto

import (
	"raidlog/pkg/database/models"
)

// Summary of a report for listings.
type ReportSummary struct {
	ID          uint   `json:"id"`
	ReportCode  string `json:"report_code"`
	Title       string `json:"title"`
	Owner       string `json:"owner"`
	ZoneID      int    `json:"zone_id"`
	ZoneName    string `json:"zone_name"`
	StartTimeMs int64  `json:"start_time_ms"`
	EndTimeMs   int64  `json:"end_time_ms"`
}

// Full report with the nested fights and players.
type ReportDetail struct {
	ReportSummary
	Fights  []FightDetail  `json:"fights"`
	Players []PlayerDetail `json:"players"`
}

// One fight of the detailed report.
type FightDetail struct {
	ID               uint     `json:"id"`
	WclFightID       int      `json:"wcl_fight_id"`
	Name             string   `json:"name"`
	EncounterID      int      `json:"encounter_id"`
	StartOffsetMs    int64    `json:"start_offset_ms"`
	EndOffsetMs      int64    `json:"end_offset_ms"`
	Kill             *bool    `json:"kill"`
	Difficulty       *int     `json:"difficulty"`
	BossPercentage   *float64 `json:"boss_percentage"`
	AverageItemLevel *float64 `json:"average_item_level"`
}

// One player of the detailed report.
type PlayerDetail struct {
	ID         uint    `json:"id"`
	WclActorID int     `json:"wcl_actor_id"`
	Name       string  `json:"name"`
	Server     *string `json:"server"`
	Class      string  `json:"class"`
}

// FromModel fills the summary from the database model.
func (rs *ReportSummary) FromModel(report *models.Report) *ReportSummary {
	return &ReportSummary{
		ID:          report.ID,
		ReportCode:  report.ReportCode,
		Title:       report.Title,
		Owner:       report.Owner,
		ZoneID:      report.ZoneID,
		ZoneName:    report.ZoneName,
		StartTimeMs: report.StartTimeMs,
		EndTimeMs:   report.EndTimeMs,
	}
}

// FromModel builds the detailed report from the database model.
func (rd *ReportDetail) FromModel(report *models.Report) *ReportDetail {
	var summaryHelper ReportSummary
	detail := &ReportDetail{
		ReportSummary: *summaryHelper.FromModel(report),
		Fights:        make([]FightDetail, 0, len(report.Fights)),
		Players:       make([]PlayerDetail, 0, len(report.Players)),
	}

	for i := range report.Fights {
		fight := &report.Fights[i]
		detail.Fights = append(detail.Fights, FightDetail{
			ID:               fight.ID,
			WclFightID:       fight.WclFightID,
			Name:             fight.Name,
			EncounterID:      fight.EncounterID,
			StartOffsetMs:    fight.StartOffsetMs,
			EndOffsetMs:      fight.EndOffsetMs,
			Kill:             fight.Kill,
			Difficulty:       fight.Difficulty,
			BossPercentage:   fight.BossPercentage,
			AverageItemLevel: fight.AverageItemLevel,
		})
	}

	for i := range report.Players {
		player := &report.Players[i]
		detail.Players = append(detail.Players, PlayerDetail{
			ID:         player.ID,
			WclActorID: player.WclActorID,
			Name:       player.Name,
			Server:     player.Server,
			Class:      player.Class,
		})
	}

	return detail
}
