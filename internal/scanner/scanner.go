package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pigeonhole/internal/config"
	"pigeonhole/internal/fserr"
	"pigeonhole/internal/logging"
)

// TimeSource identifies which filesystem timestamp classified an entry.
type TimeSource string

const (
	// SourceBirth marks entries classified by the platform creation time.
	SourceBirth TimeSource = "birth"
	// SourceModified marks entries that fell back to the modification time.
	SourceModified TimeSource = "modified"
)

// Entry describes one regular file eligible for organizing.
type Entry struct {
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	Size      int64      `json:"size"`
	Timestamp time.Time  `json:"timestamp"`
	Source    TimeSource `json:"time_source"`
}

// Scanner lists the organizable files directly inside a source directory.
type Scanner struct {
	// OnEntry, if set, receives the running count of accepted entries as
	// the scan progresses.
	OnEntry func(count int)

	exclude       []string
	includeHidden bool
	logger        *slog.Logger
}

// New builds a Scanner from configuration. A nil config scans everything.
func New(cfg *config.Config, logger *slog.Logger) *Scanner {
	s := &Scanner{
		includeHidden: true,
		logger:        logging.NewComponentLogger(logger, "scanner"),
	}
	if cfg != nil {
		s.exclude = cfg.Scan.Exclude
		s.includeHidden = cfg.Scan.IncludeHidden
	}
	return s
}

// Scan returns the name-ordered regular files directly inside dir. The
// returned error unwraps to fserr.ErrNotFound when dir is missing or not a
// directory, and to fserr.ErrAccess when dir cannot be listed. Entries
// whose metadata cannot be read are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Entry, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fserr.Wrap(fserr.ErrNotFound, "scan", "resolve source", fmt.Sprintf("cannot resolve %q", dir), err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fserr.Wrap(fserr.ErrNotFound, "scan", "stat source", fmt.Sprintf("directory %q does not exist", absDir), err)
	}
	if !info.IsDir() {
		return nil, fserr.Wrap(fserr.ErrNotFound, "scan", "stat source", fmt.Sprintf("%q is not a directory", absDir), nil)
	}
	if err := checkListable(absDir); err != nil {
		return nil, fserr.Wrap(fserr.ErrAccess, "scan", "access source", fmt.Sprintf("cannot list %q", absDir), err)
	}

	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fserr.Wrap(fserr.Classify(err), "scan", "list source", fmt.Sprintf("cannot list %q", absDir), err)
	}

	var entries []Entry
	var skippedDirs, skippedOther, skippedExcluded int
	for _, dirEntry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := dirEntry.Name()
		if dirEntry.IsDir() {
			skippedDirs++
			continue
		}
		if !dirEntry.Type().IsRegular() {
			skippedOther++
			continue
		}
		if !s.includeHidden && strings.HasPrefix(name, ".") {
			skippedExcluded++
			continue
		}
		if s.matchesExclude(name) {
			skippedExcluded++
			continue
		}

		fileInfo, err := dirEntry.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable entry",
				logging.String("name", name),
				logging.Error(err),
			)
			continue
		}

		path := filepath.Join(absDir, name)
		birth, ok := birthTime(path, fileInfo)
		timestamp, source := resolveTimestamp(birth, ok, fileInfo.ModTime())

		entries = append(entries, Entry{
			Path:      path,
			Name:      name,
			Size:      fileInfo.Size(),
			Timestamp: timestamp,
			Source:    source,
		})
		if s.OnEntry != nil {
			s.OnEntry(len(entries))
		}
	}

	s.logger.Debug("scan complete",
		logging.String("dir", absDir),
		logging.Int("files", len(entries)),
		logging.Int("skipped_dirs", skippedDirs),
		logging.Int("skipped_non_regular", skippedOther),
		logging.Int("skipped_excluded", skippedExcluded),
	)
	return entries, nil
}

func (s *Scanner) matchesExclude(name string) bool {
	for _, pattern := range s.exclude {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// resolveTimestamp picks the classification time: birth time when the
// platform reports a usable one, otherwise the modification time.
func resolveTimestamp(birth time.Time, ok bool, modTime time.Time) (time.Time, TimeSource) {
	if ok && !birth.IsZero() && birth.Unix() != 0 {
		return birth, SourceBirth
	}
	return modTime, SourceModified
}
