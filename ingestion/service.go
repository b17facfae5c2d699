package ingestion

import (
	"context"
	"fmt"
	"log"
	reportfetcher "raidlog/fetcher/data/report"
	"raidlog/ingestion/repositories"
	"raidlog/pkg/config"
	"raidlog/pkg/database/models"
	"raidlog/pkg/logger"
	"time"

	"gorm.io/gorm"
)

// ReportSource is the external provider contract.
// The real implementation is the WCL fetcher, tests plug a fake one.
type ReportSource interface {
	GetReportMetadata(ctx context.Context, reportCode string) (*reportfetcher.ReportData, error)
	GetAllEvents(ctx context.Context, reportCode string, fightIDs []int, durationMs int64) ([]reportfetcher.RawEvent, error)
}

// Service runs the whole ingestion of one report.
type Service struct {
	source ReportSource
	db     *gorm.DB
	log    *logger.IngestLogger
}

// ServiceDeps is the dependency list for the ingestion service.
type ServiceDeps struct {
	Source ReportSource
	DB     *gorm.DB
	Logger *logger.IngestLogger
}

// NewService creates a ingestion service.
func NewService(deps *ServiceDeps) *Service {
	return &Service{
		source: deps.Source,
		db:     deps.DB,
		log:    deps.Logger,
	}
}

// IngestReport fetches, resolves, normalizes and persists one report.
// Re-running it for the same code replaces the previous data completely:
// the delete and every insert share one transaction, so a failure leaves
// nothing half written.
func (s *Service) IngestReport(ctx context.Context, reportCode string) error {
	data, err := s.source.GetReportMetadata(ctx, reportCode)
	if err != nil {
		return fmt.Errorf("couldn't fetch the report %s: %w", reportCode, err)
	}

	// Collect the fight ids for the event query.
	fightIDs := make([]int, 0, len(data.Fights))
	for _, fight := range data.Fights {
		if fight.ID != nil {
			fightIDs = append(fightIDs, *fight.ID)
		}
	}

	var rawEvents []reportfetcher.RawEvent
	if len(fightIDs) > 0 {
		rawEvents, err = s.source.GetAllEvents(ctx, reportCode, fightIDs, data.EndTime-data.StartTime)
		if err != nil {
			return fmt.Errorf("couldn't fetch the events of report %s: %w", reportCode, err)
		}
	} else {
		s.log.Warnf("Report %s has no fights, skipping the event fetch", reportCode)
	}

	// Start transaction.
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.writeReport(tx, reportCode, data, rawEvents); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit report %s: %w", reportCode, err)
	}

	s.shipLog(reportCode)

	return nil
}

// Ship the run log to the bucket when one is configured.
func (s *Service) shipLog(reportCode string) {
	if config.Bucket.LogBucket == "" {
		return
	}

	objectKey := fmt.Sprintf("reports/%s/%d.log", reportCode, time.Now().Unix())
	if err := s.log.UploadToS3Bucket(objectKey); err != nil {
		log.Printf("Couldn't upload the ingestion log of report %s: %v", reportCode, err)
	}
}

// Run every write of one ingestion inside the given transaction.
func (s *Service) writeReport(tx *gorm.DB, reportCode string, data *reportfetcher.ReportData, rawEvents []reportfetcher.RawEvent) error {
	repo := repositories.NewReportRepository(tx)

	// Drop any previous ingestion of this code before writing anything.
	if err := repo.DeleteReportByCode(reportCode); err != nil {
		return fmt.Errorf("couldn't delete the previous report %s: %w", reportCode, err)
	}

	report := &models.Report{
		ReportCode:  data.Code,
		Title:       data.Title,
		Owner:       data.Owner.Name,
		ZoneID:      data.Zone.ID,
		ZoneName:    data.Zone.Name,
		StartTimeMs: data.StartTime,
		EndTimeMs:   data.EndTime,
	}
	if err := repo.CreateReport(report); err != nil {
		return fmt.Errorf("couldn't create the report %s: %w", reportCode, err)
	}

	maps, err := ResolveIdentities(repo, report, data.Fights, data.MasterData.Actors, s.log)
	if err != nil {
		return fmt.Errorf("couldn't resolve the identities of report %s: %w", reportCode, err)
	}

	batches, skips := NormalizeEvents(report.ID, rawEvents, maps)
	s.log.Infof(
		"Report %s: normalized %d events (%d skipped: %d unknown type, %d missing timestamp, %d missing ability, %d unknown fight, %d missing fields)",
		reportCode, batches.Total(), skips.Total(),
		skips.UnknownType, skips.MissingTimestamp, skips.MissingAbility, skips.UnknownFight, skips.MissingField,
	)

	// One bulk insert per kind.
	if err := repo.CreateCastEventsBatch(batches.Casts); err != nil {
		return fmt.Errorf("couldn't create the cast events: %w", err)
	}
	if err := repo.CreateBuffEventsBatch(batches.Buffs); err != nil {
		return fmt.Errorf("couldn't create the buff events: %w", err)
	}
	if err := repo.CreateDamageEventsBatch(batches.Damage); err != nil {
		return fmt.Errorf("couldn't create the damage events: %w", err)
	}
	if err := repo.CreateHealEventsBatch(batches.Heals); err != nil {
		return fmt.Errorf("couldn't create the heal events: %w", err)
	}
	if err := repo.CreateDeathEventsBatch(batches.Deaths); err != nil {
		return fmt.Errorf("couldn't create the death events: %w", err)
	}

	stats := BuildFightStats(report.ID, batches)
	if err := repo.CreatePlayerFightStatsBatch(stats); err != nil {
		return fmt.Errorf("couldn't create the fight stats: %w", err)
	}

	return nil
}
