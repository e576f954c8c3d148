package tui

import (
	"fmt"
	"strings"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 7

// renderDetail produces the detail view for a selected issue.
func renderDetail(issue *models.Issue, width int) string {
	if issue == nil {
		return styleDetailPanel.Width(width).Render("No issue selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(issue.Severity).Render(strings.ToUpper(string(issue.Severity)))
	b.WriteString(fmt.Sprintf("%s  %s  WCAG %s (Level %s)\n", sevStyled, issue.Title, issue.WCAGRule, issue.WCAGLevel))
	b.WriteString(issue.Explanation)
	b.WriteString("\n")

	if len(issue.AffectedGroups) > 0 {
		b.WriteString(fmt.Sprintf("Affects: %s\n", strings.Join(issue.AffectedGroups, ", ")))
	}
	b.WriteString(fmt.Sprintf("Fix: %s\n", issue.SuggestedFix))
	if issue.CodeSnippet != "" {
		b.WriteString(fmt.Sprintf("Example: %s", issue.CodeSnippet))
	}

	return styleDetailPanel.Width(width).Render(b.String())
}
