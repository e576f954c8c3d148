package tui

import (
	"fmt"
	"strings"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// headerHeight is the number of terminal lines the results header occupies.
const headerHeight = 5

// renderResultsHeader summarizes a completed scan: score, category,
// badges, and severity breakdown. The region carries the scanned URL
// as its label so its purpose is announced.
func renderResultsHeader(result *models.ScanResult, width int) string {
	var b strings.Builder

	// Line 1: region label (the scanned URL)
	b.WriteString(fmt.Sprintf("Results for %s\n", result.URL))

	// Line 2: score and category
	catText := categoryStyle(result.Category).Render(
		fmt.Sprintf("%s (%.0f/100)", strings.ToUpper(result.Category), result.Score),
	)
	b.WriteString(fmt.Sprintf("Score: %s\n", catText))

	// Line 3: compliance badges
	badgeParts := make([]string, 0, len(result.ComplianceBadges))
	for _, badge := range result.ComplianceBadges {
		mark := "✓"
		style := categoryStyle(models.CategoryGood)
		if !badge.Passed {
			mark = "✗"
			style = categoryStyle(models.CategoryPoor)
		}
		badgeParts = append(badgeParts, style.Render(fmt.Sprintf("%s %s", mark, badge.Label)))
	}
	if len(badgeParts) > 0 {
		b.WriteString(strings.Join(badgeParts, "  "))
	}
	b.WriteString("\n")

	// Line 4: severity breakdown
	counts := models.CountBySeverity(result.Issues)
	sevParts := make([]string, 0, len(models.AllSeverities))
	for _, sev := range models.AllSeverities {
		if counts[sev] > 0 {
			label := fmt.Sprintf("%s:%d", strings.ToUpper(string(sev)[:1]), counts[sev])
			sevParts = append(sevParts, severityStyle(sev).Render(label))
		}
	}
	if len(sevParts) > 0 {
		b.WriteString(strings.Join(sevParts, "  "))
	} else {
		b.WriteString("No issues found")
	}

	return styleHeader.Width(width).Render(b.String())
}
