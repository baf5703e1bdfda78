// Package scanner enumerates the regular files of a single directory and
// resolves the timestamp each file will be classified by.
//
// Scans are non-recursive and read-only. Directories, symlinks, and other
// non-regular entries are skipped, as are names matched by the configured
// exclude globs. Each entry records whether its timestamp came from the
// platform birth time or fell back to the modification time.
package scanner
