//go:build unix

package scanner

import "golang.org/x/sys/unix"

// checkListable verifies the process can enumerate dir contents.
func checkListable(dir string) error {
	return unix.Access(dir, unix.R_OK|unix.X_OK)
}

// CheckWritable verifies the process can create and remove entries in dir.
// The move phase calls this before any mutation.
func CheckWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return err
	}
	return nil
}
