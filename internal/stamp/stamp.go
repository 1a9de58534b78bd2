// Package stamp provides synccore.Stamper implementations: the platform
// boundary the sync core calls through after a successful copy, never
// reaching into an OS package directly itself.
package stamp

import (
	"os"
	"time"
)

// chtimesStamper implements StampModified with os.Chtimes, the portable
// stdlib primitive for setting a file's modification (and access) time.
// StampCreated is a no-op outside Windows (stamp_other.go); the Windows
// build (stamp_windows.go) sets the NTFS creation time instead.
type chtimesStamper struct{}

// New returns the best Stamper available on the running OS: everywhere
// StampModified works via os.Chtimes; on Windows StampCreated additionally
// sets the NTFS creation time (see stamp_windows.go).
func New() *chtimesStamper {
	return &chtimesStamper{}
}

func (chtimesStamper) StampModified(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}
