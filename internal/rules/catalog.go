package rules

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed wcag.yaml
var embeddedCatalog []byte

// Rule is one entry of the WCAG rule catalog. The scanner turns a
// triggered rule into a models.Issue.
type Rule struct {
	ID             string   `yaml:"id"`
	WCAGRule       string   `yaml:"wcag_rule"`
	WCAGLevel      string   `yaml:"wcag_level"`
	Severity       string   `yaml:"severity"`
	Title          string   `yaml:"title"`
	Explanation    string   `yaml:"explanation"`
	AffectedGroups []string `yaml:"affected_groups"`
	SuggestedFix   string   `yaml:"suggested_fix"`
	CodeSnippet    string   `yaml:"code_snippet"`
}

// Catalog is the full set of rules a scan can report against.
type Catalog struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Load parses the embedded default catalog.
func Load() (*Catalog, error) {
	return parse(embeddedCatalog)
}

// LoadFromFile reads a catalog override from disk.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse rule catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid rule catalog: %w", err)
	}
	return &c, nil
}

// validate enforces the catalog invariants: unique non-empty IDs,
// a known severity, and a WCAG rule reference per entry.
func (c *Catalog) validate() error {
	if len(c.Rules) == 0 {
		return fmt.Errorf("catalog has no rules")
	}

	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if r.ID == "" {
			return fmt.Errorf("rule %d has no id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id: %s", r.ID)
		}
		seen[r.ID] = true

		if _, ok := models.ParseSeverity(r.Severity); !ok {
			return fmt.Errorf("rule %s has unknown severity: %q", r.ID, r.Severity)
		}
		if r.WCAGRule == "" {
			return fmt.Errorf("rule %s has no WCAG rule reference", r.ID)
		}
		if r.WCAGLevel != "A" && r.WCAGLevel != "AA" && r.WCAGLevel != "AAA" {
			return fmt.Errorf("rule %s has invalid WCAG level: %q", r.ID, r.WCAGLevel)
		}
	}
	return nil
}

// ByID returns the rule with the given id, if present.
func (c *Catalog) ByID(id string) (Rule, bool) {
	for _, r := range c.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// ToIssue materializes a catalog rule as a detected issue.
func (r Rule) ToIssue() models.Issue {
	severity, _ := models.ParseSeverity(r.Severity)
	return models.Issue{
		ID:             r.ID,
		Severity:       severity,
		WCAGRule:       r.WCAGRule,
		WCAGLevel:      r.WCAGLevel,
		Title:          r.Title,
		Explanation:    r.Explanation,
		AffectedGroups: r.AffectedGroups,
		SuggestedFix:   r.SuggestedFix,
		CodeSnippet:    r.CodeSnippet,
	}
}
