//go:build !windows

package synccore

import (
	"os"
	"time"
)

// fileCreatedTime returns the best available "created" timestamp for info.
// Most non-Windows filesystems (and Go's os.FileInfo) expose no creation
// time at all, so modification time is the closest available substitute —
// matching what the original tool's copy_created_date option actually did
// on those platforms.
func fileCreatedTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
