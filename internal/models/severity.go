package models

// Severity classifies the impact of an accessibility issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// AllSeverities lists every severity in display order, most severe first.
var AllSeverities = []Severity{SeverityCritical, SeverityModerate, SeverityMinor}

// severityRank orders severities for sorting (lower = more severe).
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityModerate: 1,
	SeverityMinor:    2,
}

// Rank returns the sort position of a severity. Critical sorts first.
// Unknown severities sort after every known one.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity normalizes external severity strings to a Severity.
func ParseSeverity(raw string) (Severity, bool) {
	switch raw {
	case "critical", "CRITICAL":
		return SeverityCritical, true
	case "moderate", "MODERATE", "serious":
		return SeverityModerate, true
	case "minor", "MINOR", "low":
		return SeverityMinor, true
	default:
		return "", false
	}
}
