package models

import "time"

// Issue is a single accessibility defect found on the scanned page.
type Issue struct {
	ID             string   `json:"id"`
	Severity       Severity `json:"severity"`
	WCAGRule       string   `json:"wcag_rule"`  // e.g. "1.1.1"
	WCAGLevel      string   `json:"wcag_level"` // "A", "AA", or "AAA"
	Title          string   `json:"title"`
	Explanation    string   `json:"explanation"`
	AffectedGroups []string `json:"affected_groups"`
	SuggestedFix   string   `json:"suggested_fix"`
	CodeSnippet    string   `json:"code_snippet,omitempty"`
}

// ComplianceBadge summarizes pass/fail against one compliance standard.
type ComplianceBadge struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

// Score categories derived from the numeric score.
const (
	CategoryPoor = "poor"
	CategoryFair = "fair"
	CategoryGood = "good"
)

// ScanResult is the complete outcome of one accessibility scan.
// It is created whole by the scanner and never mutated afterwards;
// display ordering of issues is derived at render time (RankIssues).
type ScanResult struct {
	URL              string            `json:"url"`
	ScanDate         time.Time         `json:"scan_date"`
	Score            float64           `json:"score"`    // 0-100
	Category         string            `json:"category"` // poor, fair, good
	Issues           []Issue           `json:"issues"`
	ComplianceBadges []ComplianceBadge `json:"compliance_badges"`
}

// CategoryForScore maps a 0-100 score to its qualitative bucket.
func CategoryForScore(score float64) string {
	switch {
	case score < 50:
		return CategoryPoor
	case score < 80:
		return CategoryFair
	default:
		return CategoryGood
	}
}

// CalculateScore derives a 0-100 score from a set of issues by
// deducting a per-severity penalty from a perfect score, clamped at 0.
func CalculateScore(issues []Issue) float64 {
	penalties := map[Severity]float64{
		SeverityCritical: 15,
		SeverityModerate: 7,
		SeverityMinor:    3,
	}

	score := 100.0
	for _, issue := range issues {
		score -= penalties[issue.Severity]
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Validate checks the structural invariants of a scan result:
// every issue carries a known severity and a WCAG rule, and issue
// IDs are unique within the result.
func (r *ScanResult) Validate() []string {
	var errs []string

	seen := make(map[string]bool, len(r.Issues))
	for _, issue := range r.Issues {
		if !issue.Severity.Valid() {
			errs = append(errs, "issue '"+issue.ID+"' has invalid severity: '"+string(issue.Severity)+"'")
		}
		if issue.WCAGRule == "" {
			errs = append(errs, "issue '"+issue.ID+"' is missing a WCAG rule")
		}
		if seen[issue.ID] {
			errs = append(errs, "duplicate issue id: '"+issue.ID+"'")
		}
		seen[issue.ID] = true
	}

	if r.Score < 0 || r.Score > 100 {
		errs = append(errs, "score out of range")
	}

	return errs
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int, len(AllSeverities))
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}
