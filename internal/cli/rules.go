package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/spf13/cobra"
)

// rulesCmd lists the WCAG rule catalog
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the WCAG rule catalog scans report against",
	Long: `Rules prints every rule the scan engine can report, with its WCAG
reference, conformance level, and severity.

A custom catalog can be supplied via the rules_file config key.`,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		logError("failed to load rule catalog: %v", err)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWCAG\tLEVEL\tSEVERITY\tTITLE")
	for _, sev := range models.AllSeverities {
		for _, r := range catalog.Rules {
			ruleSev, _ := models.ParseSeverity(r.Severity)
			if ruleSev != sev {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.WCAGRule, r.WCAGLevel, strings.ToUpper(r.Severity), r.Title)
		}
	}
	return w.Flush()
}
