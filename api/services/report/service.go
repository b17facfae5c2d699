package report

import (
	"context"
	"errors"

	"raidlog/api/dto"
	reportrepo "raidlog/api/repositories/report"
	"raidlog/ingestion"

	"github.com/redis/go-redis/v9"
)

// IngestionQueue is the background queue contract.
type IngestionQueue interface {
	Enqueue(reportCode string)
}

// StatusReader reads the ingestion status of a report code back.
type StatusReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// Service for the report endpoints.
type ReportService struct {
	ReportRepository reportrepo.ReportRepository
	queue            IngestionQueue
	status           StatusReader
}

// Dependencies for the report service.
type ReportServiceDeps struct {
	Repository reportrepo.ReportRepository
	Queue      IngestionQueue
	Status     StatusReader
}

// Create a instance of the report service.
func NewReportService(deps *ReportServiceDeps) *ReportService {
	return &ReportService{
		ReportRepository: deps.Repository,
		queue:            deps.Queue,
		status:           deps.Status,
	}
}

// StartIngestion queues the report and returns right away.
// The caller polls the status endpoint to follow the run.
func (rs *ReportService) StartIngestion(reportCode string) {
	rs.queue.Enqueue(reportCode)
}

// GetIngestionStatus returns the last recorded status of a code, empty
// when the code was never enqueued or the key already expired.
func (rs *ReportService) GetIngestionStatus(ctx context.Context, reportCode string) (string, error) {
	status, err := rs.status.Get(ctx, ingestion.StatusKey(reportCode))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}

	return status, nil
}

// GetDetailedReport returns the full report, nil when not ingested.
func (rs *ReportService) GetDetailedReport(reportCode string) (*dto.ReportDetail, error) {
	report, err := rs.ReportRepository.GetDetailedReportByCode(reportCode)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	var detail dto.ReportDetail
	return detail.FromModel(report), nil
}

// GetReports returns a page of report summaries.
func (rs *ReportService) GetReports(limit int, offset int) ([]dto.ReportSummary, error) {
	reports, err := rs.ReportRepository.GetReports(limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ReportSummary, 0, len(reports))
	for i := range reports {
		var summary dto.ReportSummary
		summaries = append(summaries, *summary.FromModel(&reports[i]))
	}

	return summaries, nil
}

// DeleteReport removes a report, returning whether it existed.
func (rs *ReportService) DeleteReport(reportCode string) (bool, error) {
	return rs.ReportRepository.DeleteReportByCode(reportCode)
}

// GetFightEvents returns the ordered timeline of one fight of a report.
// The flag tells if the fight exists at all.
func (rs *ReportService) GetFightEvents(reportCode string, wclFightID int, kinds []string) ([]dto.FightEvent, bool, error) {
	fight, err := rs.ReportRepository.GetFightByCodeAndWclID(reportCode, wclFightID)
	if err != nil {
		return nil, false, err
	}
	if fight == nil {
		return nil, false, nil
	}

	events, err := rs.ReportRepository.GetFightEvents(fight.ID, kinds)
	if err != nil {
		return nil, true, err
	}

	return events, true, nil
}
