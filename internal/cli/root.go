package cli

import (
	"fmt"
	"os"

	"github.com/nakhudarahma/AccessNX/internal/config"
	"github.com/nakhudarahma/AccessNX/internal/rules"
	"github.com/nakhudarahma/AccessNX/internal/scanner"
	"github.com/nakhudarahma/AccessNX/internal/validator"
	"github.com/spf13/cobra"
)

const (
	// Exit codes
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Score below the configured threshold
	ExitInvalidInput = 2 // URL validation failure
	ExitRuntimeError = 3 // Scan, I/O, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// buildVersion is injected by main via SetVersion.
	buildVersion = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "accessnx",
	Short: "AccessNX - Website accessibility scanner",
	Long: `AccessNX scans a website for accessibility defects and reports them
ranked by severity, classified against the WCAG 2.1 guidelines.

It provides:
- A severity-ranked issue list with remediation guidance
- WCAG A/AA/AAA compliance badges and a 0-100 score
- An interactive terminal UI with screen-reader-correct announcements
- CI/CD integration with exit codes and a score threshold

Quick start:
  accessnx scan example.com
  accessnx tui

Other commands:
  accessnx scan example.com --format json --fail-below 70
  accessnx rules`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// SetVersion records the build version injected via -ldflags.
func SetVersion(v string) {
	if v != "" {
		buildVersion = v
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.accessnx.yaml or ./accessnx.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("AccessNX %s\n", buildVersion)
		fmt.Println("Website accessibility scanner")
	},
}

// ScoreBelowThresholdError represents a score threshold failure
type ScoreBelowThresholdError struct {
	Score     float64
	Threshold float64
}

func (e *ScoreBelowThresholdError) Error() string {
	return fmt.Sprintf("accessibility score (%.0f) is below threshold (%.0f)", e.Score, e.Threshold)
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	switch err.(type) {
	case *validator.ValidationError:
		return ExitInvalidInput
	case *ScoreBelowThresholdError:
		return ExitPolicyFail
	default:
		return ExitRuntimeError
	}
}

// buildScanner constructs the scan collaborator the config asks for.
func buildScanner(cfg *config.Config) (scanner.Scanner, error) {
	if cfg.Engine == config.EngineRemote {
		logDebug("using remote engine at %s", cfg.APIURL)
		return scanner.NewRemote(cfg.APIURL, cfg.APIKey), nil
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	logDebug("using simulated engine with %d catalog rules", len(catalog.Rules))
	return scanner.NewSimulated(catalog, scanner.DefaultSimulatedDelay), nil
}

// loadCatalog returns the rule catalog, honoring a configured override.
func loadCatalog(cfg *config.Config) (*rules.Catalog, error) {
	if cfg.RulesFile != "" {
		logVerbose("loading rule catalog from %s", cfg.RulesFile)
		return rules.LoadFromFile(cfg.RulesFile)
	}
	return rules.Load()
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}
