// Package fserr defines the filesystem error taxonomy shared by the scan and
// move phases, plus helpers for wrapping and classifying failures.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAccess             = errors.New("access denied")
	ErrInUse              = errors.New("file in use")
	ErrCollisionExhausted = errors.New("collision resolution exhausted")
	ErrLocked             = errors.New("directory locked")
	ErrTransient          = errors.New("transient failure")
)

// Wrap builds an error message that includes phase context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, phase, operation, message string, err error) error {
	detail := buildDetail(phase, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Tagged reports whether err already carries one of the taxonomy sentinels.
func Tagged(err error) bool {
	for _, marker := range []error{ErrNotFound, ErrAccess, ErrInUse, ErrCollisionExhausted, ErrLocked, ErrTransient} {
		if errors.Is(err, marker) {
			return true
		}
	}
	return false
}

// Classify maps an underlying OS error onto the taxonomy sentinel that best
// describes it. Errors outside the taxonomy map to ErrTransient.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOENT):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return ErrAccess
	case errors.Is(err, syscall.EBUSY), errors.Is(err, syscall.ETXTBSY):
		return ErrInUse
	default:
		return ErrTransient
	}
}

func buildDetail(phase, operation, message string) string {
	parts := make([]string, 0, 3)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "filesystem failure"
	}
	return strings.Join(parts, ": ")
}
