//go:build !unix

package scanner

// checkListable is a no-op where access(2) is unavailable; ReadDir surfaces
// listing failures instead.
func checkListable(dir string) error {
	return nil
}

// CheckWritable is a no-op where access(2) is unavailable; per-file move
// failures surface write problems instead.
func CheckWritable(dir string) error {
	return nil
}
