// Package main provides the CLI entrypoint for timestable.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/timestable/internal/config"
	"github.com/verte-zerg/timestable/internal/generator"
	"github.com/verte-zerg/timestable/internal/logging"
	"github.com/verte-zerg/timestable/internal/model"
	"github.com/verte-zerg/timestable/internal/ranges"
	"github.com/verte-zerg/timestable/internal/session"
	"github.com/verte-zerg/timestable/internal/stats"
	"github.com/verte-zerg/timestable/internal/tui"
)

var (
	firstMin  int
	firstMax  int
	secondMin int
	secondMax int
	logFile   string
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logErrf("failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timestable",
		Short:         "TUI multiplication drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}
	addRangeFlags(rootCmd)
	rootCmd.Flags().StringVar(&logFile, "log-file", os.Getenv(config.LogFileEnv), "write debug logs to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTableCmd())

	return rootCmd
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&firstMin, "first-min", config.DefaultRangeMin, "smallest first operand")
	cmd.Flags().IntVar(&firstMax, "first-max", config.DefaultRangeMax, "largest first operand")
	cmd.Flags().IntVar(&secondMin, "second-min", config.DefaultRangeMin, "smallest second operand")
	cmd.Flags().IntVar(&secondMax, "second-max", config.DefaultRangeMax, "largest second operand")
}

// loadPracticeConfig merges the config file with explicitly set flags.
func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(fileCfg)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	applyIntFlag(cmd, "first-min", &cfg.Ranges.FirstMin, firstMin)
	applyIntFlag(cmd, "first-max", &cfg.Ranges.FirstMax, firstMax)
	applyIntFlag(cmd, "second-min", &cfg.Ranges.SecondMin, secondMin)
	applyIntFlag(cmd, "second-max", &cfg.Ranges.SecondMax, secondMax)
	return cfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("practice needs an interactive terminal")
	}
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(logFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	rc := ranges.New(cfg.Bounds, cfg.Ranges)
	if rc.Snapshot() != cfg.Ranges {
		logger.Info("ranges clamped to limits", "requested", cfg.Ranges, "applied", rc.Snapshot())
	}
	engine := session.New(cfg, rc,
		session.WithGenerator(generator.New(cfg.RetryLimit)),
		session.WithLogger(logger),
	)
	ui := tui.NewModel(cfg, rc, engine, logger)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	engine.Stop()

	if engine.Stats().Total() == 0 {
		return nil
	}
	if err := stats.RenderSummary(cmd.OutOrStdout(), engine.Summary()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template when path does not exist.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the products for the configured ranges",
		Args:  cobra.NoArgs,
		RunE:  runTableCmd,
	}
	addRangeFlags(cmd)
	return cmd
}

func runTableCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	rc := ranges.New(cfg.Bounds, cfg.Ranges)
	if err := stats.RenderProductTable(cmd.OutOrStdout(), rc.Snapshot()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
