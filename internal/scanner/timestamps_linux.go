package scanner

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime reports the file creation time via statx. Not every filesystem
// records one; the bool is false when the kernel leaves STATX_BTIME unset.
func birthTime(path string, _ os.FileInfo) (time.Time, bool) {
	var stx unix.Statx_t
	flags := unix.AT_SYMLINK_NOFOLLOW | unix.AT_STATX_SYNC_AS_STAT
	if err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, false
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	if stx.Btime.Sec == 0 && stx.Btime.Nsec == 0 {
		return time.Time{}, false
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}
