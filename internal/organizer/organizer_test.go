package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pigeonhole/internal/fserr"
	"pigeonhole/internal/mover"
	"pigeonhole/internal/organizer"
	"pigeonhole/internal/plan"
	"pigeonhole/internal/testsupport"
)

func acceptAll(*plan.Plan) (bool, error) { return true, nil }

func declineAll(*plan.Plan) (bool, error) { return false, nil }

func run(t *testing.T, dir string, opts organizer.Options) *organizer.Outcome {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testsupport.NewConfig(t)
	}
	outcome, err := organizer.New(opts).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return outcome
}

func TestRunMissingDirectoryFailsBeforeMutation(t *testing.T) {
	opts := organizer.Options{Config: testsupport.NewConfig(t), Gate: acceptAll}
	_, err := organizer.New(opts).Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, fserr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRunEmptyDirectorySkipsGate(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	gateCalled := false
	outcome := run(t, dir, organizer.Options{
		Gate: func(*plan.Plan) (bool, error) {
			gateCalled = true
			return true, nil
		},
	})

	if !outcome.NoFiles {
		t.Fatal("expected NoFiles outcome")
	}
	if gateCalled {
		t.Fatal("gate must not run when there is nothing to organize")
	}
	if outcome.Phase != organizer.PhaseReported {
		t.Fatalf("phase = %s, want reported", outcome.Phase)
	}
}

func TestRunMovesFilesAndReports(t *testing.T) {
	dir := t.TempDir()
	june := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(dir, "a.txt"), "alpha", june)
	testsupport.WriteFileAt(t, filepath.Join(dir, "b.txt"), "beta", june)

	var progress []int
	outcome := run(t, dir, organizer.Options{
		Gate: acceptAll,
		OnMoveResult: func(index, total int, result mover.Result) {
			progress = append(progress, index)
		},
	})

	if outcome.Cancelled || outcome.NoFiles {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Summary.Moved != 2 || outcome.Summary.Failed != 0 {
		t.Fatalf("summary = %+v", outcome.Summary)
	}
	if outcome.Summary.RunID == "" || outcome.Summary.RunID != outcome.RunID {
		t.Fatalf("run ID not threaded: %+v", outcome.Summary)
	}
	if len(progress) != 2 {
		t.Fatalf("progress callbacks = %v", progress)
	}

	moved := 0
	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := os.Stat(filepath.Join(dir, outcome.Plan.Items[0].Bucket.String(), name)); err == nil {
			moved++
		}
	}
	if moved != 2 {
		t.Fatalf("expected both files relocated, found %d", moved)
	}
}

func TestRunCancellationLeavesDirectoryUntouched(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFileContent(t, filepath.Join(dir, "a.txt"), "alpha")
	testsupport.WriteFileContent(t, filepath.Join(dir, "b.txt"), "beta")
	before := testsupport.SnapshotDir(t, dir)

	previewed := false
	outcome := run(t, dir, organizer.Options{
		Gate:      declineAll,
		OnPreview: func(*plan.Plan) { previewed = true },
	})

	if !outcome.Cancelled {
		t.Fatal("expected cancelled outcome")
	}
	if outcome.Phase != organizer.PhaseCancelled {
		t.Fatalf("phase = %s, want cancelled", outcome.Phase)
	}
	if !previewed {
		t.Fatal("preview must still run before the gate")
	}

	after := testsupport.SnapshotDir(t, dir)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("directory changed on cancel:\nbefore %v\nafter %v", before, after)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Fatalf("bucket directory %s created despite cancel", entry.Name())
		}
	}
}

func TestRunNilGateDeclines(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFileContent(t, filepath.Join(dir, "a.txt"), "alpha")

	outcome := run(t, dir, organizer.Options{})
	if !outcome.Cancelled {
		t.Fatal("a run without a gate must decline")
	}
}

func TestRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	june := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(dir, "a.txt"), "a", june)
	testsupport.WriteFileAt(t, filepath.Join(dir, "b.txt"), "b", june)
	testsupport.WriteFileAt(t, filepath.Join(dir, "c.txt"), "c", june)

	// The gate fires between scan and move; vanishing b.txt there makes
	// the second move fail while the first and third proceed.
	outcome := run(t, dir, organizer.Options{
		Gate: func(p *plan.Plan) (bool, error) {
			if err := os.Remove(filepath.Join(dir, "b.txt")); err != nil {
				t.Fatalf("remove b.txt: %v", err)
			}
			return true, nil
		},
	})

	if outcome.Summary.Moved != 2 || outcome.Summary.Failed != 1 {
		t.Fatalf("summary = %+v", outcome.Summary)
	}
	if len(outcome.Summary.Failures) != 1 || outcome.Summary.Failures[0].Name != "b.txt" {
		t.Fatalf("failures = %+v", outcome.Summary.Failures)
	}
	// The filesystem may report a birth time that outranks the pinned
	// mtime, so take each file's bucket from the plan itself.
	for _, item := range outcome.Plan.Items {
		if item.Name == "b.txt" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, item.Bucket.String(), item.Name)); err != nil {
			t.Fatalf("%s missing from destination: %v", item.Name, err)
		}
	}
}

func TestRunIdempotentSecondPass(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFileContent(t, filepath.Join(dir, "a.txt"), "alpha")
	testsupport.WriteFileContent(t, filepath.Join(dir, "b.txt"), "beta")

	first := run(t, dir, organizer.Options{Gate: acceptAll})
	if first.Summary.Moved != 2 {
		t.Fatalf("first run summary = %+v", first.Summary)
	}

	second := run(t, dir, organizer.Options{Gate: acceptAll})
	if !second.NoFiles {
		t.Fatalf("second run should find nothing, got %+v", second)
	}
}

func TestRunDryRunMovesNothing(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFileContent(t, filepath.Join(dir, "a.txt"), "alpha")
	before := testsupport.SnapshotDir(t, dir)

	outcome := run(t, dir, organizer.Options{Gate: acceptAll, DryRun: true})
	if outcome.Summary.Moved != 1 {
		t.Fatalf("dry-run summary = %+v", outcome.Summary)
	}
	if !outcome.Summary.DryRun {
		t.Fatal("summary must be flagged as dry run")
	}
	if !reflect.DeepEqual(before, testsupport.SnapshotDir(t, dir)) {
		t.Fatal("dry run mutated the directory")
	}
}

func TestRunGateErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFileContent(t, filepath.Join(dir, "a.txt"), "alpha")

	wantErr := errors.New("stdin closed")
	opts := organizer.Options{
		Config: testsupport.NewConfig(t),
		Gate:   func(*plan.Plan) (bool, error) { return false, wantErr },
	}
	_, err := organizer.New(opts).Run(context.Background(), dir)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
