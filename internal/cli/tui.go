package cli

import (
	"github.com/nakhudarahma/AccessNX/internal/tui"
	"github.com/nakhudarahma/AccessNX/internal/workflow"
	"github.com/spf13/cobra"
)

// tuiCmd launches the interactive scanner
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive accessibility scanner",
	Long: `Launch the full-screen terminal UI: enter a URL, run scans, and browse
issues ranked by severity with keyboard navigation.

Key bindings:
  enter    validate the URL and start a scan
  tab      move focus to the results table
  esc      move focus back to the URL input
  ctrl+c   quit`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	sc, err := buildScanner(cfg)
	if err != nil {
		logError("failed to initialize scan engine: %v", err)
		return err
	}

	return tui.Run(workflow.New(sc), cfg.ScanTimeout)
}
