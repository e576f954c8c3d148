package models

import "sort"

// RankIssues returns a new slice ordered by severity, critical first.
// The sort is stable: issues of equal severity keep their input order.
// The input slice is never modified, so a stored ScanResult stays
// immutable while every render ranks fresh.
func RankIssues(issues []Issue) []Issue {
	ranked := make([]Issue, len(issues))
	copy(ranked, issues)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity.Rank() < ranked[j].Severity.Rank()
	})

	return ranked
}
