package mover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"pigeonhole/internal/config"
	"pigeonhole/internal/fileutil"
	"pigeonhole/internal/fserr"
	"pigeonhole/internal/logging"
	"pigeonhole/internal/plan"
)

// maxCollisionAttempts bounds the numeric-suffix probe for one filename.
// It is a package-level variable so tests can shrink it.
var maxCollisionAttempts = 10000

// Result is the outcome of one planned move.
type Result struct {
	Item      plan.Item
	FinalPath string
	Err       error
}

// Moved reports whether the item reached its destination.
func (r Result) Moved() bool {
	return r.Err == nil
}

// Reason returns the human-readable failure description, empty on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Mover moves planned files into their bucket subdirectories.
type Mover struct {
	// OnResult, if set, receives each result as soon as the outcome is
	// known, with the 1-based index into the plan and the plan total.
	OnResult func(index, total int, result Result)

	// DryRun walks the full path including collision probing but performs
	// no filesystem mutation.
	DryRun bool

	verifyCopies bool
	logger       *slog.Logger
}

// New builds a Mover from configuration. A nil config verifies cross-device
// copies.
func New(cfg *config.Config, logger *slog.Logger) *Mover {
	m := &Mover{
		verifyCopies: true,
		logger:       logging.NewComponentLogger(logger, "mover"),
	}
	if cfg != nil {
		m.verifyCopies = cfg.Organize.VerifyCopies
	}
	return m
}

// Move executes the plan in order. Every processed item yields exactly one
// Result; a per-file failure is recorded in its Result and never aborts the
// batch. The returned error is non-nil only when ctx is cancelled, in which
// case the results cover the items processed before cancellation.
func (m *Mover) Move(ctx context.Context, p *plan.Plan) ([]Result, error) {
	if p.Empty() {
		return nil, nil
	}

	total := len(p.Items)
	results := make([]Result, 0, total)
	for i, item := range p.Items {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := m.moveOne(p.SourceDir, item)
		results = append(results, result)

		if result.Err != nil {
			m.logger.Warn("move failed",
				logging.String("name", item.Name),
				logging.String(logging.FieldBucket, item.Bucket.String()),
				logging.Error(result.Err),
			)
		} else {
			m.logger.Debug("moved",
				logging.String("name", item.Name),
				logging.String(logging.FieldBucket, item.Bucket.String()),
				logging.String("destination", result.FinalPath),
				logging.Bool("dry_run", m.DryRun),
			)
		}
		if m.OnResult != nil {
			m.OnResult(i+1, total, result)
		}
	}
	return results, nil
}

func (m *Mover) moveOne(sourceDir string, item plan.Item) Result {
	bucketDir := filepath.Join(sourceDir, item.Bucket.String())
	if !m.DryRun {
		if err := os.MkdirAll(bucketDir, 0o755); err != nil {
			return Result{Item: item, Err: fserr.Wrap(fserr.Classify(err), "move", "ensure bucket dir",
				fmt.Sprintf("cannot create %s", bucketDir), err)}
		}
	}

	target, err := nextDestination(bucketDir, item.Name)
	if err != nil {
		return Result{Item: item, Err: err}
	}
	if m.DryRun {
		return Result{Item: item, FinalPath: target}
	}

	if err := m.relocate(item.Path, bucketDir, item.Name, &target); err != nil {
		return Result{Item: item, Err: err}
	}
	return Result{Item: item, FinalPath: target}
}

// relocate renames source to *target, re-probing once when the rename loses a
// create race and falling back to copy+remove across filesystems. *target is
// updated when the re-probe picks a new name.
func (m *Mover) relocate(source, bucketDir, name string, target *string) error {
	renameErr := os.Rename(source, *target)
	if renameErr == nil {
		return nil
	}

	if errors.Is(renameErr, fs.ErrExist) {
		retry, err := nextDestination(bucketDir, name)
		if err != nil {
			return err
		}
		*target = retry
		if renameErr = os.Rename(source, retry); renameErr == nil {
			return nil
		}
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		copyFn := fileutil.CopyFile
		if m.verifyCopies {
			copyFn = fileutil.CopyFileVerified
		}
		if copyErr := copyFn(source, *target); copyErr != nil {
			return fserr.Wrap(fserr.Classify(copyErr), "move", "cross-device copy",
				fmt.Sprintf("cannot copy %s", name), copyErr)
		}
		if err := os.Remove(source); err != nil {
			m.logger.Warn("source left behind after cross-device copy",
				logging.String("path", source),
				logging.Error(err),
			)
		}
		return nil
	}

	return fserr.Wrap(fserr.Classify(renameErr), "move", "rename",
		fmt.Sprintf("cannot move %s", name), renameErr)
}

// nextDestination returns the first unoccupied path for name inside dir,
// probing the plain name first and then stem_1.ext, stem_2.ext, and so on.
func nextDestination(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// Dotfiles keep the whole name as the stem.
		stem, ext = ext, ""
	}

	for attempt := 0; attempt <= maxCollisionAttempts; attempt++ {
		candidate := filepath.Join(dir, name)
		if attempt > 0 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, attempt, ext))
		}
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", fserr.Wrap(fserr.Classify(err), "move", "probe destination",
				fmt.Sprintf("cannot stat %s", candidate), err)
		}
	}
	return "", fserr.Wrap(fserr.ErrCollisionExhausted, "move", "resolve collision",
		fmt.Sprintf("no free name for %q in %s", name, dir), nil)
}
