//go:build !linux && !darwin

package scanner

import (
	"os"
	"time"
)

// birthTime reports no creation time on platforms without a wired stat
// variant; callers fall back to the modification time.
func birthTime(_ string, _ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
