package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"doccomp/internal/config"
	"doccomp/internal/version"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: config.NewDiscardLogger()}

	root := &cobra.Command{
		Use:           "doccomp",
		Short:         "Documentation compiler diagnostics toolkit",
		Long:          `doccomp inspects and merges the diagnostics files written by documentation builds`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	root.PersistentFlags().String("config-dir", ".", "directory to start looking for "+config.FileName)
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error); overrides build.log_level")
	root.PersistentFlags().String("color", "", "colorize output (auto|on|off); overrides diagnostics.color")

	root.AddCommand(newDiagnosticsCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("failed to get config-dir flag: %w", err)
	}
	cfg, found, err := config.Load(dir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		a.cfg.Build.LogLevel = lvl
	}
	if mode, _ := cmd.Flags().GetString("color"); mode != "" {
		switch strings.ToLower(mode) {
		case "auto", "on", "off":
			a.cfg.Diagnostics.Color = strings.ToLower(mode)
		default:
			return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
		}
	}

	a.logger = config.NewLogger(cmd.ErrOrStderr(), config.LevelFromString(a.cfg.Build.LogLevel))
	slog.SetDefault(a.logger)
	if found {
		a.logger.Debug("configuration loaded", "path", cfg.Path)
	}
	return nil
}

// useColor resolves the configured colour mode against the output stream.
func (a *app) useColor(out any) bool {
	switch a.cfg.Diagnostics.Color {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

// main executes the root command and exits with status 1 on failure.
func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
