package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pigeonhole/internal/logging"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestCleanupOldLogsPrunesOnlyExpiredMatches(t *testing.T) {
	dir := t.TempDir()
	old := writeAged(t, dir, "pigeonhole-20240101-000000.log", 90*24*time.Hour)
	fresh := writeAged(t, dir, "pigeonhole-20260801-000000.log", time.Hour)
	unrelated := writeAged(t, dir, "notes.txt", 90*24*time.Hour)

	logging.CleanupOldLogs(logging.NewNop(), dir, "pigeonhole-*.log", 30)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be pruned, stat err=%v", old, err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("expected fresh log to remain: %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("expected non-matching file to remain: %v", err)
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	old := writeAged(t, dir, "pigeonhole-20240101-000000.log", 90*24*time.Hour)

	logging.CleanupOldLogs(logging.NewNop(), dir, "pigeonhole-*.log", 0)

	if _, err := os.Stat(old); err != nil {
		t.Fatalf("expected file to remain with retention disabled: %v", err)
	}
}
