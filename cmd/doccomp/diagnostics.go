package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"doccomp/internal/diag"
	"doccomp/internal/diagfmt"
	"doccomp/internal/source"
)

// errHasErrors makes the process exit non-zero once the diagnostics are printed.
var errHasErrors = errors.New("diagnostics contain errors")

func newDiagnosticsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diagnostics",
		Aliases: []string{"diag"},
		Short:   "Work with diagnostics files",
	}
	cmd.AddCommand(newDiagnosticsPrintCmd(a))
	cmd.AddCommand(newDiagnosticsMergeCmd(a))
	return cmd
}

func newDiagnosticsPrintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [flags] <diagnostics.json>",
		Short: "Print a diagnostics file in the console format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrint(cmd, args[0])
		},
	}
	cmd.Flags().Bool("fixits", false, "print fix-it lines; overrides diagnostics.fixits")
	cmd.Flags().String("level", "", "least severe level to print (error|warning|information|hint)")
	cmd.Flags().Bool("sources", false, "read each diagnostic's source file and print the offending line")
	return cmd
}

func (a *app) runPrint(cmd *cobra.Command, path string) error {
	doc, err := diagfmt.ReadFile(path)
	if err != nil {
		return err
	}

	opts := a.cfg.EngineOptions()
	opts.Logger = a.logger
	if lvl, _ := cmd.Flags().GetString("level"); lvl != "" {
		sev, err := diag.ParseSeverity(lvl)
		if err != nil {
			return err
		}
		opts.FilterLevel = sev
	}
	fixits := a.cfg.Diagnostics.FixIts
	if cmd.Flags().Changed("fixits") {
		fixits, _ = cmd.Flags().GetBool("fixits")
	}

	problems := doc.Problems()
	diag.Sort(problems)
	var sources *source.FileSet
	if withSources, _ := cmd.Flags().GetBool("sources"); withSources {
		sources = a.loadSources(problems)
	}

	out := cmd.OutOrStdout()
	engine := diag.NewEngine(opts)
	engine.Add(diagfmt.NewConsoleWriter(out, diagfmt.ConsoleOptions{
		FixIts:  fixits,
		Color:   a.useColor(out),
		Sources: sources,
	}))
	if a.cfg.Diagnostics.Output != "" {
		engine.Add(diagfmt.NewFileWriter(a.cfg.Resolve(a.cfg.Diagnostics.Output)))
	}
	engine.Emit(problems...)
	engine.Flush()

	a.logger.Debug("diagnostics printed", "path", path, "total", len(doc.Diagnostics), "shown", len(engine.Problems()))
	if engine.HasErrors() {
		return errHasErrors
	}
	return nil
}

// loadSources reads every distinct diagnostic source. Unreadable files only
// lose their snippet.
func (a *app) loadSources(problems []diag.Problem) *source.FileSet {
	fs := source.NewFileSet()
	seen := make(map[string]bool)
	for _, p := range problems {
		src := p.Diagnostic.Source
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		if _, err := fs.Load(src); err != nil {
			a.logger.Debug("source not loaded", "path", src, "err", err)
		}
	}
	return fs
}

func newDiagnosticsMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge -o <out.json> <in.json|glob>...",
		Short: "Concatenate several diagnostics files into one",
		Long:  `Concatenate diagnostics files in argument order. Arguments may be ** glob patterns; matches are taken in lexical order`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			return a.runMerge(out, args)
		},
	}
	cmd.Flags().StringP("output", "o", "", "merged diagnostics file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) runMerge(out string, args []string) error {
	inputs, err := expandInputs(args, out)
	if err != nil {
		return err
	}
	doc, err := diagfmt.Merge(inputs...)
	if err != nil {
		return err
	}
	w := diagfmt.NewFileWriter(out)
	w.Receive(doc.Problems())
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	a.logger.Info("diagnostics merged", "inputs", len(inputs), "diagnostics", len(doc.Diagnostics), "output", out)
	return nil
}

// expandInputs replaces glob arguments with their matches. Plain paths are kept
// as given so a missing file is reported by name. The output file never
// matches its own glob.
func expandInputs(args []string, out string) ([]string, error) {
	absOut, _ := filepath.Abs(out)
	var inputs []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			inputs = append(inputs, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		slices.Sort(matches)
		n := 0
		for _, m := range matches {
			if abs, _ := filepath.Abs(m); abs == absOut {
				continue
			}
			inputs = append(inputs, m)
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("no diagnostics files match %q", arg)
		}
	}
	return inputs, nil
}
