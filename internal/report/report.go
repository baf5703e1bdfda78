// Package report aggregates move results into the run summary and renders
// it for the console. Pure presentation; nothing here mutates the
// filesystem.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"pigeonhole/internal/mover"
)

// Failure describes one file that could not be moved.
type Failure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary is the aggregate outcome of a run's move phase.
type Summary struct {
	RunID      string        `json:"run_id"`
	Moved      int           `json:"moved"`
	Failed     int           `json:"failed"`
	BytesMoved int64         `json:"bytes_moved"`
	Elapsed    time.Duration `json:"elapsed"`
	DryRun     bool          `json:"dry_run"`
	Failures   []Failure     `json:"failures,omitempty"`
}

// Summarize folds per-file results into a Summary, preserving failure order.
func Summarize(runID string, results []mover.Result, elapsed time.Duration, dryRun bool) Summary {
	summary := Summary{
		RunID:   runID,
		Elapsed: elapsed,
		DryRun:  dryRun,
	}
	for _, result := range results {
		if result.Moved() {
			summary.Moved++
			summary.BytesMoved += result.Item.Size
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{
			Name:   result.Item.Name,
			Reason: result.Reason(),
		})
	}
	return summary
}

// Clean reports whether every file reached its destination.
func (s Summary) Clean() bool {
	return s.Failed == 0
}

// Render writes the bordered summary block followed by one line per failure.
func Render(w io.Writer, s Summary, colorize bool) {
	title := "Organization Summary"
	if s.DryRun {
		title = "Organization Summary (dry run)"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendRow(table.Row{"Moved", fmt.Sprintf("%d", s.Moved)})
	tw.AppendRow(table.Row{"Failed", fmt.Sprintf("%d", s.Failed)})
	tw.AppendRow(table.Row{"Bytes moved", humanize.IBytes(uint64(s.BytesMoved))})
	tw.AppendRow(table.Row{"Elapsed", s.Elapsed.Round(time.Millisecond).String()})
	tw.AppendRow(table.Row{"Run", s.RunID})
	fmt.Fprintln(w, tw.Render())

	if len(s.Failures) == 0 {
		return
	}
	fmt.Fprintln(w, "Failures:")
	for _, failure := range s.Failures {
		line := fmt.Sprintf("  ✗ %s (%s)", failure.Name, failure.Reason)
		if colorize {
			line = "\x1b[31m" + line + "\x1b[0m"
		}
		fmt.Fprintln(w, line)
	}
}
