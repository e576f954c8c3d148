package scanner

import (
	"context"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/rules"
)

// DefaultSimulatedDelay models the latency of a real page inspection.
const DefaultSimulatedDelay = 1500 * time.Millisecond

// inclusion probability per severity: common defects are the minor
// ones, critical ones are rarer.
var inclusionChance = map[models.Severity]float64{
	models.SeverityCritical: 0.45,
	models.SeverityModerate: 0.55,
	models.SeverityMinor:    0.65,
}

// Simulated is a stand-in for a real accessibility-scanning engine.
// Findings are drawn deterministically from the rule catalog, seeded
// by the target URL, so repeated scans of the same page agree.
type Simulated struct {
	catalog *rules.Catalog
	delay   time.Duration
	now     func() time.Time
}

// NewSimulated creates a simulated scanner over the given catalog.
func NewSimulated(catalog *rules.Catalog, delay time.Duration) *Simulated {
	return &Simulated{
		catalog: catalog,
		delay:   delay,
		now:     time.Now,
	}
}

// Scan generates a deterministic result for the URL. Hosts under the
// reserved ".invalid" TLD fail, so the error path stays reachable in
// demos and tests. Cancellation via ctx aborts the simulated latency.
func (s *Simulated) Scan(ctx context.Context, target string) (*models.ScanResult, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, &ScanError{URL: target, Reason: "scan was cancelled", Err: ctx.Err()}
		case <-timer.C:
		}
	}

	if hostname(target) == "" || strings.HasSuffix(hostname(target), ".invalid") {
		return nil, &ScanError{URL: target, Reason: "the site could not be reached"}
	}

	issues := s.pickIssues(target)
	score := models.CalculateScore(issues)

	return &models.ScanResult{
		URL:              target,
		ScanDate:         s.now(),
		Score:            score,
		Category:         models.CategoryForScore(score),
		Issues:           issues,
		ComplianceBadges: badgesFor(issues),
	}, nil
}

// pickIssues selects catalog rules with a URL-seeded RNG. Catalog
// order is preserved, which makes the result's creation order stable.
func (s *Simulated) pickIssues(target string) []models.Issue {
	h := fnv.New64a()
	h.Write([]byte(target))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	issues := make([]models.Issue, 0, len(s.catalog.Rules))
	for _, rule := range s.catalog.Rules {
		issue := rule.ToIssue()
		if rng.Float64() < inclusionChance[issue.Severity] {
			issues = append(issues, issue)
		}
	}
	return issues
}

// badgesFor derives one compliance badge per WCAG conformance level.
// Conformance is cumulative: AA requires every A and AA rule to hold.
func badgesFor(issues []models.Issue) []models.ComplianceBadge {
	violated := make(map[string]bool, 3)
	for _, issue := range issues {
		violated[issue.WCAGLevel] = true
	}

	levels := []string{"A", "AA", "AAA"}
	badges := make([]models.ComplianceBadge, 0, len(levels))
	failed := false
	for _, level := range levels {
		failed = failed || violated[level]
		badges = append(badges, models.ComplianceBadge{
			ID:     "wcag-" + strings.ToLower(level),
			Label:  "WCAG 2.1 " + level,
			Passed: !failed,
		})
	}
	return badges
}

func hostname(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
