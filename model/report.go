package model

// Report kinds accepted by the report generator.
const (
	ReportContentStatistics = "content-statistics"
	ReportUserActivity      = "user-activity"
	ReportApprovalStats     = "approval-stats"
)

// Report output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ReportRequest is the admin report-generation payload. StartDate and
// EndDate are YYYY-MM-DD; Genre and Status are optional filters where an
// empty string or "all" means no filter.
type ReportRequest struct {
	ReportType string `json:"reportType"`
	Format     string `json:"format"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Genre      string `json:"genre"`
	Status     string `json:"status"`
}

// ReportResult is a tabular result: column names in output order plus one
// value slice per row. Columns drive the CSV header.
type ReportResult struct {
	Columns []string
	Rows    [][]any
}
