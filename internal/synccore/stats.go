package synccore

import "sync/atomic"

// Stats is a per-run summary counter set, supplementing spec.md with the
// end-of-run counts the teacher always logged per folder (see
// SPEC_FULL.md §4.3). Snapshot() is cheap and non-blocking, matching the
// style of IsDone.
type Stats struct {
	filesCopied  int64
	filesDeleted int64
	treesDeleted int64
	bytesCopied  int64
	errors       int64
}

// StatsSnapshot is an immutable point-in-time read of Stats.
type StatsSnapshot struct {
	FilesCopied  int64
	FilesDeleted int64
	TreesDeleted int64
	BytesCopied  int64
	Errors       int64
}

func (s *Stats) addCopied(bytes int64) {
	atomic.AddInt64(&s.filesCopied, 1)
	atomic.AddInt64(&s.bytesCopied, bytes)
}

func (s *Stats) addFileDeleted() { atomic.AddInt64(&s.filesDeleted, 1) }
func (s *Stats) addTreeDeleted() { atomic.AddInt64(&s.treesDeleted, 1) }
func (s *Stats) addError()       { atomic.AddInt64(&s.errors, 1) }

// Snapshot returns the current counter values. Safe to call from any
// goroutine at any time, including while a run is in progress.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		FilesCopied:  atomic.LoadInt64(&s.filesCopied),
		FilesDeleted: atomic.LoadInt64(&s.filesDeleted),
		TreesDeleted: atomic.LoadInt64(&s.treesDeleted),
		BytesCopied:  atomic.LoadInt64(&s.bytesCopied),
		Errors:       atomic.LoadInt64(&s.errors),
	}
}
