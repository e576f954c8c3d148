package reporter

import (
	"encoding/json"
	"io"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// JSONReporter generates machine-readable JSON reports
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// Generate writes the scan result as JSON with issues in ranked
// order, leaving the source result untouched.
func (r *JSONReporter) Generate(result *models.ScanResult) error {
	ranked := *result
	ranked.Issues = models.RankIssues(result.Issues)

	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(&ranked, "", "  ")
	} else {
		data, err = json.Marshal(&ranked)
	}
	if err != nil {
		return err
	}

	if _, err := r.writer.Write(data); err != nil {
		return err
	}

	// Trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}

// GenerateSummaryOnly writes a compact summary without the full issue
// bodies, for piping into dashboards.
func (r *JSONReporter) GenerateSummaryOnly(result *models.ScanResult) error {
	counts := models.CountBySeverity(result.Issues)
	summary := struct {
		URL        string                  `json:"url"`
		ScanDate   string                  `json:"scan_date"`
		Score      float64                 `json:"score"`
		Category   string                  `json:"category"`
		Issues     int                     `json:"issues"`
		BySeverity map[models.Severity]int `json:"issues_by_severity"`
	}{
		URL:        result.URL,
		ScanDate:   result.ScanDate.Format("2006-01-02T15:04:05Z07:00"),
		Score:      result.Score,
		Category:   result.Category,
		Issues:     len(result.Issues),
		BySeverity: counts,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if _, err := r.writer.Write(data); err != nil {
		return err
	}
	_, err = r.writer.Write([]byte("\n"))
	return err
}
