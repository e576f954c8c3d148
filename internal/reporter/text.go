package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer: writer,
	}
}

// Generate renders a scan result as text. Issues are ranked fresh at
// render time; the stored result is never reordered.
func (r *TextReporter) Generate(result *models.ScanResult) error {
	r.printHeader()
	r.printf("URL:       %s\n", result.URL)
	r.printf("Scanned:   %s\n", formatTimestamp(result.ScanDate))
	r.printf("Score:     %.0f/100 (%s)\n\n", result.Score, strings.ToUpper(result.Category))

	r.printBadges(result.ComplianceBadges)
	r.printIssues(models.RankIssues(result.Issues))

	return nil
}

// printHeader prints the report header
func (r *TextReporter) printHeader() {
	r.printf("╔════════════════════════════════════════════╗\n")
	r.printf("║       AccessNX Accessibility Report        ║\n")
	r.printf("╚════════════════════════════════════════════╝\n\n")
}

// printBadges prints the compliance badge section
func (r *TextReporter) printBadges(badges []models.ComplianceBadge) {
	if len(badges) == 0 {
		return
	}

	r.printf("Compliance:\n")
	r.printf("--------------------------------------------------\n")
	for _, badge := range badges {
		mark := "PASS"
		if !badge.Passed {
			mark = "FAIL"
		}
		r.printf("  [%s] %s\n", mark, badge.Label)
	}
	r.printf("\n")
}

// printIssues prints the ranked issue list
func (r *TextReporter) printIssues(issues []models.Issue) {
	if len(issues) == 0 {
		r.printf("No accessibility issues detected.\n")
		return
	}

	counts := models.CountBySeverity(issues)
	parts := make([]string, 0, len(models.AllSeverities))
	for _, sev := range models.AllSeverities {
		if counts[sev] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[sev], sev))
		}
	}
	r.printf("Issues (%d total: %s):\n", len(issues), strings.Join(parts, ", "))
	r.printf("--------------------------------------------------\n")

	for i, issue := range issues {
		r.printf("%d. [%s] %s\n", i+1, strings.ToUpper(string(issue.Severity)), issue.Title)
		r.printf("   WCAG %s (Level %s)\n", issue.WCAGRule, issue.WCAGLevel)
		r.printf("   %s\n", issue.Explanation)
		if len(issue.AffectedGroups) > 0 {
			r.printf("   Affects: %s\n", strings.Join(issue.AffectedGroups, ", "))
		}
		r.printf("   Fix: %s\n", issue.SuggestedFix)
		if issue.CodeSnippet != "" {
			r.printf("   Example: %s\n", issue.CodeSnippet)
		}
		r.printf("\n")
	}
}

// printf writes formatted output to the writer
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
