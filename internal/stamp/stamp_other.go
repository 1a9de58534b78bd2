//go:build !windows

package stamp

import "time"

// StampCreated is a no-op outside Windows: neither Linux nor macOS exposes a
// portable, settable file-creation timestamp through the Go standard
// library (the original tool left this unimplemented everywhere too — see
// sync.rs's copy_created_date comment).
func (chtimesStamper) StampCreated(path string, t time.Time) error {
	return nil
}
