package main

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pigeonhole/internal/plan"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderBucketTable lays out the preview's per-bucket aggregates: bucket
// keys left-aligned, counts and sizes right-aligned.
func renderBucketTable(buckets []plan.BucketSummary) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Bucket", "Files", "Size"})
	for _, summary := range buckets {
		tw.AppendRow(table.Row{
			summary.Key.String() + "/",
			summary.Count,
			humanize.IBytes(uint64(summary.Bytes)),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// renderSettingsTable lays out resolved configuration as setting/value
// pairs for `config show`.
func renderSettingsTable(rows [][2]string) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Setting", "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}
