package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"pigeonhole/internal/mover"
	"pigeonhole/internal/plan"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
)

const (
	glyphMoved  = "✓"
	glyphFailed = "✗"
)

func renderSectionHeader(w io.Writer, title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	fmt.Fprintln(w, line)
}

// isAffirmative recognizes a confirmation; anything else declines.
func isAffirmative(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// renderProgressLine formats one per-file outcome:
//
//	[3/12] ✓ moved: a.txt → 202406/
//	[4/12] ✗ failed: b.txt (access denied: move: rename: ...)
func renderProgressLine(index, total int, result mover.Result, dryRun, colorize bool) string {
	prefix := fmt.Sprintf("[%d/%d]", index, total)
	if result.Moved() {
		verb := "moved"
		if dryRun {
			verb = "would move"
		}
		line := fmt.Sprintf("%s %s %s: %s → %s/", prefix, glyphMoved, verb, result.Item.Name, result.Item.Bucket)
		if colorize {
			return ansiGreen + line + ansiReset
		}
		return line
	}
	line := fmt.Sprintf("%s %s failed: %s (%s)", prefix, glyphFailed, result.Item.Name, result.Reason())
	if colorize {
		return ansiRed + line + ansiReset
	}
	return line
}

// renderPreview prints the plan: totals, the per-bucket table, and a bounded
// filename → bucket sample per bucket.
func renderPreview(w io.Writer, p *plan.Plan, sample int, colorize bool) {
	renderSectionHeader(w, "Organization Preview")
	fmt.Fprintf(w, "Source: %s\n", p.SourceDir)
	fmt.Fprintf(w, "Total: %d files (%s) across %d buckets\n",
		len(p.Items), humanize.IBytes(uint64(p.TotalBytes)), len(p.Buckets))
	fmt.Fprintln(w)

	fmt.Fprintln(w, renderBucketTable(p.Buckets))

	for _, preview := range p.Preview(sample) {
		for _, name := range preview.Names {
			line := fmt.Sprintf("  %s → %s/", name, preview.Key)
			if colorize {
				line = ansiDim + line + ansiReset
			}
			fmt.Fprintln(w, line)
		}
		if preview.More > 0 {
			line := fmt.Sprintf("  … and %d more into %s/", preview.More, preview.Key)
			if colorize {
				line = ansiDim + line + ansiReset
			}
			fmt.Fprintln(w, line)
		}
	}

	if p.FallbackCount > 0 {
		fmt.Fprintf(w, "Note: %d of %d timestamps taken from modified time (no birth time available)\n",
			p.FallbackCount, len(p.Items))
	}
	fmt.Fprintln(w)
}
