// Package fileutil implements the copy fallback used when a rename crosses
// filesystems.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to a newly created dst, preserving the source's
// permission bits. dst must not exist; an occupied destination fails rather
// than overwriting.
func CopyFile(src, dst string) error {
	_, err := copyFile(src, dst, nil, nil)
	return err
}

// CopyFileVerified streams src to a newly created dst with SHA256 + size
// integrity verification and syncs dst before returning. Removes dst on
// mismatch. dst must not exist.
func CopyFileVerified(src, dst string) error {
	srcHasher := sha256.New()
	dstHasher := sha256.New()

	written, err := copyFile(src, dst, srcHasher, dstHasher)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("stat source: %w", err)
	}
	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

func copyFile(src, dst string, srcHasher, dstHasher io.Writer) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if info, err := in.Stat(); err == nil {
		mode = info.Mode().Perm()
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	var reader io.Reader = in
	if srcHasher != nil {
		reader = io.TeeReader(in, srcHasher)
	}
	var writer io.Writer = out
	if dstHasher != nil {
		writer = io.MultiWriter(out, dstHasher)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		_ = os.Remove(dst)
		return written, err
	}
	if err := out.Sync(); err != nil {
		_ = os.Remove(dst)
		return written, err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return written, err
	}
	return written, nil
}
