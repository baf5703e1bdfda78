// Package plan classifies scanned entries into an ordered move plan and the
// per-bucket aggregates shown before confirmation.
package plan

import (
	"sort"

	"pigeonhole/internal/bucket"
	"pigeonhole/internal/scanner"
)

// Item pairs a scanned entry with its destination bucket.
type Item struct {
	scanner.Entry
	Bucket bucket.Key `json:"bucket"`
}

// BucketSummary aggregates one bucket's share of the plan.
type BucketSummary struct {
	Key   bucket.Key `json:"bucket"`
	Count int        `json:"count"`
	Bytes int64      `json:"bytes"`
}

// Plan is the move plan for a single run: every item in scan order plus the
// bucket aggregates. Built once, consumed once.
type Plan struct {
	SourceDir     string          `json:"source_dir"`
	Items         []Item          `json:"items"`
	Buckets       []BucketSummary `json:"buckets"`
	TotalBytes    int64           `json:"total_bytes"`
	FallbackCount int             `json:"fallback_count"`
}

// Build classifies entries in order and aggregates per-bucket counts and
// sizes. Bucket summaries are sorted by key; item order is scan order.
func Build(sourceDir string, entries []scanner.Entry) *Plan {
	p := &Plan{SourceDir: sourceDir}
	if len(entries) == 0 {
		return p
	}

	p.Items = make([]Item, 0, len(entries))
	byKey := make(map[bucket.Key]*BucketSummary)
	for _, entry := range entries {
		key := bucket.FromTime(entry.Timestamp)
		p.Items = append(p.Items, Item{Entry: entry, Bucket: key})
		p.TotalBytes += entry.Size
		if entry.Source == scanner.SourceModified {
			p.FallbackCount++
		}

		summary, ok := byKey[key]
		if !ok {
			summary = &BucketSummary{Key: key}
			byKey[key] = summary
		}
		summary.Count++
		summary.Bytes += entry.Size
	}

	p.Buckets = make([]BucketSummary, 0, len(byKey))
	for _, summary := range byKey {
		p.Buckets = append(p.Buckets, *summary)
	}
	sort.Slice(p.Buckets, func(i, j int) bool {
		return p.Buckets[i].Key < p.Buckets[j].Key
	})
	return p
}

// Empty reports whether the plan has nothing to move.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// BucketPreview is the bounded per-bucket sample for console display.
type BucketPreview struct {
	Key   bucket.Key
	Count int
	Bytes int64
	Names []string
	More  int
}

// Preview returns per-bucket display groups: up to sample names per bucket
// in scan order, plus the count of entries beyond the sample. Buckets come
// back key-sorted.
func (p *Plan) Preview(sample int) []BucketPreview {
	if p.Empty() {
		return nil
	}
	if sample < 0 {
		sample = 0
	}

	previews := make([]BucketPreview, 0, len(p.Buckets))
	index := make(map[bucket.Key]int, len(p.Buckets))
	for _, summary := range p.Buckets {
		index[summary.Key] = len(previews)
		previews = append(previews, BucketPreview{
			Key:   summary.Key,
			Count: summary.Count,
			Bytes: summary.Bytes,
		})
	}
	for _, item := range p.Items {
		preview := &previews[index[item.Bucket]]
		if len(preview.Names) < sample {
			preview.Names = append(preview.Names, item.Name)
		} else {
			preview.More++
		}
	}
	return previews
}
