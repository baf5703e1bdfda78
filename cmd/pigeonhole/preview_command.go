package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pigeonhole/internal/logging"
	"pigeonhole/internal/plan"
	"pigeonhole/internal/scanner"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var sample int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preview [directory]",
		Short: "Show the organization plan without moving anything",
		Long: `Preview scans and classifies like organize but stops before the
confirmation gate: it never prompts and never mutates the directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			out := cmd.OutOrStdout()

			source, err := selectSource(cmd, cfg, args, nil)
			if err != nil {
				return err
			}
			if source == "" {
				fmt.Fprintln(out, "No directory selected.")
				return nil
			}

			logger := logging.NewNop()
			if ctx.verbose() {
				logger, err = logging.New(logging.Options{
					Level:       "debug",
					Format:      cfg.Logging.Format,
					OutputPaths: []string{"stderr"},
				})
				if err != nil {
					return err
				}
			}

			entries, err := scanner.New(cfg, logger).Scan(cmd.Context(), source)
			if err != nil {
				return err
			}
			p := plan.Build(source, entries)

			if jsonOut {
				return writePlanJSON(cmd, p)
			}
			if p.Empty() {
				fmt.Fprintln(out, "No files found to organize.")
				return nil
			}

			sampleSize := cfg.Preview.Sample
			if cmd.Flags().Changed("sample") {
				sampleSize = sample
			}
			renderPreview(out, p, sampleSize, ctx.colorEnabled(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "Filenames to list per bucket")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the plan as JSON")
	return cmd
}

// writePlanJSON emits the machine-readable plan, indented, to stdout.
func writePlanJSON(cmd *cobra.Command, p *plan.Plan) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
