package reportfetcher

import (
	"context"
	"fmt"
	"raidlog/fetcher/requests"
)

// The report fetcher with it's GraphQL client.
type ReportFetcher struct {
	client *requests.Client
}

// Create a instance of the report fetcher.
func CreateReportFetcher(client *requests.Client) *ReportFetcher {
	return &ReportFetcher{
		client: client,
	}
}

const metadataQuery = `
query ReportMetadata($reportCode: String!) {
    reportData {
        report(code: $reportCode) {
            code
            title
            owner { name }
            startTime
            endTime
            zone { id name }
            fights {
                id
                startTime
                endTime
                name
                encounterID
                kill
                difficulty
                bossPercentage
                averageItemLevel
            }
            masterData(translate: true) {
                actors {
                    id
                    name
                    type
                    subType
                    server
                }
            }
        }
    }
}`

const eventsQuery = `
query ReportEvents($reportCode: String!, $fightIDs: [Int], $startTime: Float!, $endTime: Float!, $limit: Int) {
    reportData {
        report(code: $reportCode) {
            events(fightIDs: $fightIDs, startTime: $startTime, endTime: $endTime, limit: $limit) {
                data
                nextPageTimestamp
            }
        }
    }
}`

// The WCL API caps a single events page at 10000 entries.
const eventsPageLimit = 10000

// Get the report metadata, with the fight list and the actor roster.
func (r *ReportFetcher) GetReportMetadata(ctx context.Context, reportCode string) (*ReportData, error) {
	var result struct {
		ReportData struct {
			Report *ReportData `json:"report"`
		} `json:"reportData"`
	}

	err := r.client.GraphQL(ctx, metadataQuery, map[string]any{"reportCode": reportCode}, &result)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch the metadata for report %s: %w", reportCode, err)
	}

	if result.ReportData.Report == nil {
		return nil, fmt.Errorf("no report found for code %s", reportCode)
	}

	return result.ReportData.Report, nil
}

// Get a single page of events starting at the given offset.
func (r *ReportFetcher) GetEventsPage(ctx context.Context, reportCode string, fightIDs []int, startOffsetMs int64, endOffsetMs int64) (*EventsPage, error) {
	var result struct {
		ReportData struct {
			Report struct {
				Events EventsPage `json:"events"`
			} `json:"report"`
		} `json:"reportData"`
	}

	variables := map[string]any{
		"reportCode": reportCode,
		"fightIDs":   fightIDs,
		"startTime":  startOffsetMs,
		"endTime":    endOffsetMs,
		"limit":      eventsPageLimit,
	}

	if err := r.client.GraphQL(ctx, eventsQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("couldn't fetch the events page for report %s: %w", reportCode, err)
	}

	return &result.ReportData.Report.Events, nil
}

// Get the complete event list for the report, paging until the API
// stops returning a next page timestamp.
func (r *ReportFetcher) GetAllEvents(ctx context.Context, reportCode string, fightIDs []int, durationMs int64) ([]RawEvent, error) {
	var allEvents []RawEvent

	var startOffset int64
	for {
		page, err := r.GetEventsPage(ctx, reportCode, fightIDs, startOffset, durationMs)
		if err != nil {
			return nil, err
		}

		allEvents = append(allEvents, page.Data...)

		// The last page carries no next timestamp.
		if page.NextPageTimestamp == nil {
			return allEvents, nil
		}
		startOffset = *page.NextPageTimestamp
	}
}
