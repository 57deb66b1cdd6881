package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/playfit-monitor/internal/config"
	"github.com/pfrederiksen/playfit-monitor/internal/logger"
	"github.com/pfrederiksen/playfit-monitor/internal/monitor"
	"github.com/pfrederiksen/playfit-monitor/internal/notifier"
	"github.com/pfrederiksen/playfit-monitor/internal/scraper"
	"github.com/pfrederiksen/playfit-monitor/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDryRun  bool
	flagDataDir string
	flagEnvFile string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playfit-monitor",
		Short: "Check PlayFit session signups and alert when the threshold is reached",
		Long: `Checks the PlayFit organiser page for the next Saturday session's signup
count and emails the configured recipients once it reaches the threshold.
Designed to be invoked by an external scheduler; running it by hand performs
a single manual check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the alert instead of emailing it")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/playfit-monitor", "Data directory for alert state")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", "", "Env file to load configuration from")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logger.Init(level, cfg.Environment)

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc, err := scraper.New(cfg.OrganiserURL, cfg.PagePassword)
	if err != nil {
		return fmt.Errorf("initializing scraper: %w", err)
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRunNotifier()
	} else {
		n = notifier.NewEmailNotifier(cfg)
	}

	m := monitor.New(cfg, sc, store, n)
	m.DryRun = flagDryRun

	result, err := m.Run(time.Now())
	if err != nil {
		return err
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logger.Log.WithError(err).Error("Check failed")
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
