package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/reporter"
	"github.com/nakhudarahma/AccessNX/internal/workflow"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Scan command flags
	scanFormat    string
	scanOutput    string
	scanTimeout   time.Duration
	scanFailBelow float64
	scanSummary   bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Run one accessibility scan and print the report",
	Long: `Scan validates the URL, runs a single accessibility scan, and prints
the result with issues ranked by severity.

The command will:
1. Validate the URL (a missing scheme defaults to https)
2. Run the configured scan engine against the normalized target
3. Rank detected issues by severity, critical first
4. Output the report in the specified format

Example:
  accessnx scan example.com
  accessnx scan https://example.com --format json
  accessnx scan example.com --fail-below 70
  accessnx scan example.com --output report.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "",
		"output format: text, json, or both (default from config)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "",
		"output file path (default: stdout)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0,
		"per-scan timeout (default from config)")
	scanCmd.Flags().Float64Var(&scanFailBelow, "fail-below", -1,
		"exit with code 1 if the score falls below this value (default from config)")
	scanCmd.Flags().BoolVar(&scanSummary, "summary", false,
		"JSON output: emit a compact summary instead of the full report")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Apply config defaults if flags not set
	if scanFormat == "" {
		scanFormat = cfg.Format
	}
	if scanTimeout == 0 {
		scanTimeout = cfg.ScanTimeout
	}
	if scanFailBelow == -1 {
		scanFailBelow = cfg.FailBelow
	}

	sc, err := buildScanner(cfg)
	if err != nil {
		logError("failed to initialize scan engine: %v", err)
		return err
	}

	ctrl := workflow.New(sc)
	_, req := ctrl.Submit(args[0])
	if req == nil {
		// Validation failed; surface the reason with the input exit code.
		return ctrl.Snapshot().Err
	}
	logVerbose("scanning %s", req.Target)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, scanTimeout)
	defer cancel()
	ctrl.Run(ctx, req)

	snap := ctrl.Snapshot()
	if snap.Err != nil {
		logError("scan failed: %v", snap.Err)
		return snap.Err
	}

	if err := writeReport(snap.Result, scanFormat, scanOutput); err != nil {
		return err
	}

	if scanFailBelow > 0 && snap.Result.Score < scanFailBelow {
		return &ScoreBelowThresholdError{Score: snap.Result.Score, Threshold: scanFailBelow}
	}
	return nil
}

// writeReport renders the result in the requested format(s).
func writeReport(result *models.ScanResult, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if format == "text" || format == "both" {
		if err := reporter.NewTextReporter(w).Generate(result); err != nil {
			return fmt.Errorf("generate text report: %w", err)
		}
	}

	if format == "json" || format == "both" {
		// Pretty-print when a human is watching, compact when piped.
		pretty := outputPath == "" && term.IsTerminal(int(os.Stdout.Fd()))
		jr := reporter.NewJSONReporter(w, pretty)
		if scanSummary {
			return jr.GenerateSummaryOnly(result)
		}
		if err := jr.Generate(result); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	}

	return nil
}
