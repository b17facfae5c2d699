package filters

import (
	"fmt"
	"net/url"
	"strings"
)

// Body of the report processing request.
// Accepts either a full report URL or a bare report code.
type ProcessReportRequest struct {
	ReportURL string `json:"report_url" binding:"required"`
}

// ExtractReportCode pulls the report code out of the request.
// URLs must carry a /reports/<code> path segment.
func (r *ProcessReportRequest) ExtractReportCode() (string, error) {
	raw := strings.TrimSpace(r.ReportURL)

	// Bare code, no path to parse.
	if !strings.Contains(raw, "/") {
		if raw == "" {
			return "", fmt.Errorf("empty report url")
		}
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid report url: %w", err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "reports" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}

	return "", fmt.Errorf("couldn't find a report code on the url")
}

// Query params of the report listing.
type ListReportsQuery struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// Query params of the fight events endpoint.
type FightEventsQuery struct {
	Types string `form:"types"`
}

// Kinds returns the requested event kinds as a list, empty means all.
func (q *FightEventsQuery) Kinds() []string {
	if strings.TrimSpace(q.Types) == "" {
		return nil
	}

	kinds := make([]string, 0, 5)
	for _, kind := range strings.Split(q.Types, ",") {
		kind = strings.TrimSpace(kind)
		if kind != "" {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}
