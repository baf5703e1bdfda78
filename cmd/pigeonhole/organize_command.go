package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pigeonhole/internal/config"
	"pigeonhole/internal/fserr"
	"pigeonhole/internal/logging"
	"pigeonhole/internal/mover"
	"pigeonhole/internal/organizer"
	"pigeonhole/internal/plan"
	"pigeonhole/internal/report"
	"pigeonhole/internal/runlock"
	"pigeonhole/internal/scanner"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool
	var dryRun bool
	var sample int

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Move a directory's files into YYYYMM bucket subdirectories",
		Long: `Organize scans the chosen directory, groups its files by the month they
were created (falling back to the modification time), previews the plan, and
moves the files into YYYYMM subdirectories after confirmation.

The directory comes from the argument, then paths.default_source in the
configuration, then an interactive prompt when stdin is a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			out := cmd.OutOrStdout()

			// One buffered reader for the whole invocation: a fresh reader
			// per prompt could swallow input meant for the next one.
			input := bufio.NewReader(cmd.InOrStdin())

			source, err := selectSource(cmd, cfg, args, input)
			if err != nil {
				return err
			}
			if source == "" {
				fmt.Fprintln(out, "No directory selected.")
				return nil
			}

			start := time.Now()
			logger, logPath, err := logging.NewRunLogger(cfg, ctx.verbose(), start)
			if err != nil {
				return err
			}
			logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "pigeonhole-*.log", cfg.Logging.RetentionDays)

			if err := scanner.CheckWritable(source); err != nil {
				return fserr.Wrap(fserr.Classify(err), "startup", "access source",
					fmt.Sprintf("cannot write to %q", source), err)
			}

			lock, err := runlock.Acquire(cfg.Paths.StateDir, source)
			if err != nil {
				return err
			}
			defer func() {
				_ = lock.Release()
			}()

			colorize := ctx.colorEnabled(out)
			sampleSize := cfg.Preview.Sample
			if cmd.Flags().Changed("sample") {
				sampleSize = sample
			}

			var bar *progressbar.ProgressBar
			if f, ok := out.(*os.File); ok && ctx.colorEnabled(f) {
				bar = progressbar.Default(-1, "Scanning")
			}
			finishBar := func() {
				if bar != nil {
					_ = bar.Finish()
					fmt.Fprintln(out)
					bar = nil
				}
			}

			org := organizer.New(organizer.Options{
				Config: cfg,
				Logger: logger,
				DryRun: dryRun,
				Gate: func(p *plan.Plan) (bool, error) {
					return confirmPlan(cmd, cfg, p, assumeYes, input)
				},
				OnScanProgress: func(count int) {
					if bar != nil {
						_ = bar.Set(count)
					}
				},
				OnPreview: func(p *plan.Plan) {
					finishBar()
					renderPreview(out, p, sampleSize, colorize)
				},
				OnMoveResult: func(index, total int, result mover.Result) {
					fmt.Fprintln(out, renderProgressLine(index, total, result, dryRun, colorize))
				},
			})

			outcome, err := org.Run(cmd.Context(), source)
			finishBar()
			if err != nil {
				return err
			}

			switch {
			case outcome.NoFiles:
				fmt.Fprintln(out, "No files found to organize.")
			case outcome.Cancelled:
				fmt.Fprintln(out, "Cancelled. Nothing was moved.")
			default:
				fmt.Fprintln(out)
				report.Render(out, outcome.Summary, colorize)
				if logPath != "" {
					fmt.Fprintf(out, "Log: %s\n", logPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Walk the full plan without moving anything")
	cmd.Flags().IntVar(&sample, "sample", 0, "Filenames to list per bucket in the preview")
	return cmd
}

// selectSource resolves the directory to organize: positional argument,
// configured default, then an interactive prompt when input is non-nil and
// stdin looks interactive. An empty result means no selection; callers treat
// that as a clean halt.
func selectSource(cmd *cobra.Command, cfg *config.Config, args []string, input *bufio.Reader) (string, error) {
	var raw string
	switch {
	case len(args) > 0 && strings.TrimSpace(args[0]) != "":
		raw = args[0]
	case cfg != nil && cfg.Paths.DefaultSource != "":
		raw = cfg.Paths.DefaultSource
	case input != nil && interactiveInput(cmd):
		fmt.Fprint(cmd.OutOrStdout(), "Directory to organize: ")
		line, err := readLine(input)
		if err != nil {
			return "", fmt.Errorf("read directory selection: %w", err)
		}
		raw = strings.TrimSpace(line)
	}
	if raw == "" {
		return "", nil
	}
	return config.ExpandPath(raw)
}

// confirmPlan is the pipeline's confirmation gate. Anything that is not an
// explicit yes declines.
func confirmPlan(cmd *cobra.Command, cfg *config.Config, p *plan.Plan, assumeYes bool, input *bufio.Reader) (bool, error) {
	out := cmd.OutOrStdout()
	if assumeYes || (cfg != nil && cfg.Organize.AssumeYes) {
		fmt.Fprintln(out, "Proceeding without confirmation (--yes).")
		return true, nil
	}
	if !interactiveInput(cmd) {
		fmt.Fprintln(out, "Standard input is not a terminal; declining. Re-run with --yes to proceed.")
		return false, nil
	}

	fmt.Fprintf(out, "Move %d files into %d buckets? [y/N]: ", len(p.Items), len(p.Buckets))
	line, err := readLine(input)
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return isAffirmative(line), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
