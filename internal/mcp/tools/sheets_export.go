package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/job"
)

const defaultTab = "Jobs"

// SheetsClient is the subset of the Sheets client used by sheets_export
type SheetsClient interface {
	AppendValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) error
	ClearValues(ctx context.Context, spreadsheetID, a1Range string) error
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string          `json:"spreadsheetId" jsonschema:"Google Sheets document ID"`
	Tab           string          `json:"tab,omitempty" jsonschema:"Tab name, default Jobs"`
	ClearTab      bool            `json:"clearTab,omitempty" jsonschema:"Clear the tab and write a header row first"`
	Search        JobSearchParams `json:"search,omitempty" jsonschema:"job_search arguments selecting the rows"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheetId"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"writtenRows"`
	TotalResults  int       `json:"totalResults"`
	CompletedAt   time.Time `json:"completedAt"`
}

var sheetHeader = []any{"Title", "Company", "Location", "Employment type", "Salary", "Apply link", "Posted at"}

// WithSheetsExport registers the sheets_export tool; nil client skips it
func WithSheetsExport(svc job.Service, client SheetsClient) Option {
	if client == nil {
		return nil
	}
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Run a job search and append the resulting rows to a Google Sheets tab",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
			if strings.TrimSpace(params.SpreadsheetID) == "" {
				return nil, nil, fmt.Errorf("sheets_export: spreadsheetId is required")
			}
			tab := params.Tab
			if tab == "" {
				tab = defaultTab
			}

			criteria, err := params.Search.Criteria()
			if err != nil {
				return nil, nil, err
			}
			resp, err := svc.Search(ctx, criteria)
			if err != nil {
				return nil, nil, fmt.Errorf("sheets_export: %w", err)
			}

			rows := make([][]any, 0, len(resp.Data)+1)
			if params.ClearTab {
				if err := client.ClearValues(ctx, params.SpreadsheetID, tab); err != nil {
					return nil, nil, err
				}
				rows = append(rows, sheetHeader)
			}
			for _, r := range resp.Data {
				rows = append(rows, SheetRow(r))
			}

			if len(rows) > 0 {
				if err := client.AppendValues(ctx, params.SpreadsheetID, tab, rows); err != nil {
					return nil, nil, err
				}
			}
			reg.logger.Info("sheets export complete", "spreadsheetId", params.SpreadsheetID, "tab", tab, "rows", len(resp.Data))

			res, err := jsonResult(SheetsExportResult{
				SpreadsheetID: params.SpreadsheetID,
				Tab:           tab,
				WrittenRows:   len(resp.Data),
				TotalResults:  resp.TotalResults,
				CompletedAt:   time.Now().UTC(),
			})
			return res, nil, err
		})
	}
}

// SheetRow flattens a record into the exported column order
func SheetRow(r domain.JobRecord) []any {
	return []any{
		r.Title,
		r.EmployerName,
		location(r),
		r.EmploymentType,
		salary(r),
		deref(r.ApplyLink),
		postedAt(r),
	}
}

func location(r domain.JobRecord) string {
	parts := make([]string, 0, 4)
	for _, p := range []*string{r.City, r.Region, r.Country} {
		if v := deref(p); v != "" {
			parts = append(parts, v)
		}
	}
	if r.IsRemote {
		parts = append(parts, "Remote")
	}
	return strings.Join(parts, ", ")
}

func salary(r domain.JobRecord) string {
	format := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	lo, hi := format(r.SalaryMin), format(r.SalaryMax)

	var s string
	switch {
	case lo != "" && hi != "":
		s = lo + "-" + hi
	case lo != "":
		s = lo + "+"
	case hi != "":
		s = "up to " + hi
	default:
		return ""
	}
	if cur := deref(r.SalaryCurrency); cur != "" {
		s += " " + cur
	}
	if period := deref(r.SalaryPeriod); period != "" {
		s += "/" + strings.ToLower(period)
	}
	return s
}

func postedAt(r domain.JobRecord) string {
	if r.PostedAt == nil {
		return ""
	}
	return time.Unix(*r.PostedAt, 0).UTC().Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
