package fserr_test

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"syscall"
	"testing"

	"pigeonhole/internal/fserr"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("boom")
	err := fserr.Wrap(fserr.ErrAccess, "scan", "list directory", "cannot read source", cause)
	if !errors.Is(err, fserr.ErrAccess) {
		t.Fatalf("expected wrapped error to match ErrAccess, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"scan", "list directory", "cannot read source", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in message %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := fserr.Wrap(nil, "move", "rename file", "", nil)
	if !errors.Is(err, fserr.ErrTransient) {
		t.Fatalf("expected ErrTransient fallback, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := fserr.Wrap(fserr.ErrCollisionExhausted, "move", "allocate name", "no free suffix", nil)
	if !errors.Is(err, fserr.ErrCollisionExhausted) {
		t.Fatalf("expected ErrCollisionExhausted, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not exist", fs.ErrNotExist, fserr.ErrNotFound},
		{"enoent", syscall.ENOENT, fserr.ErrNotFound},
		{"permission", fs.ErrPermission, fserr.ErrAccess},
		{"eacces", syscall.EACCES, fserr.ErrAccess},
		{"eperm", syscall.EPERM, fserr.ErrAccess},
		{"ebusy", syscall.EBUSY, fserr.ErrInUse},
		{"etxtbsy", syscall.ETXTBSY, fserr.ErrInUse},
		{"other", errors.New("disk full"), fserr.ErrTransient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fserr.Classify(tc.in)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("Classify(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestClassifyWrappedPathError(t *testing.T) {
	err := &os.PathError{Op: "open", Path: "/nope", Err: syscall.EACCES}
	if got := fserr.Classify(err); !errors.Is(got, fserr.ErrAccess) {
		t.Fatalf("Classify(PathError{EACCES}) = %v, want ErrAccess", got)
	}
}
