package synccore

import (
	"os"
	"path/filepath"
)

// scan implements the Scanner (spec.md §4.2): reconcile one destination
// directory against one source directory, enqueueing further dir-tasks for
// subdirectories and op-tasks for files that need copying or deleting.
//
// Errors at every step are logged; an error on one entry skips only that
// entry, and a failure to list the destination or source directory ends
// this scan. No error here aborts the run (spec.md §7).
func (op *Operation) scan(src, dest string) {
	// 1. Ensure destination is a directory.
	if destInfo, err := os.Lstat(dest); err == nil {
		if !destInfo.IsDir() {
			if err := os.Remove(dest); err != nil {
				op.logf(LevelError, "remove non-directory destination "+dest+": "+err.Error())
			}
			if err := os.Mkdir(dest, 0o755); err != nil {
				op.logf(LevelError, "create destination directory "+dest+": "+err.Error())
			}
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			op.logf(LevelError, "create destination directory "+dest+": "+err.Error())
		}
	} else {
		op.logf(LevelError, "stat destination "+dest+": "+err.Error())
	}

	// 2. List destination into a name -> entry map; whatever survives step 3
	// is unmatched and gets deleted in step 4.
	destEntries, err := os.ReadDir(dest)
	if err != nil {
		op.logf(LevelError, "list destination directory "+dest+": "+err.Error())
		return
	}
	remaining := make(map[string]os.DirEntry, len(destEntries))
	for _, e := range destEntries {
		remaining[e.Name()] = e
	}

	// 3. Walk the source.
	srcEntries, err := os.ReadDir(src)
	if err != nil {
		op.logf(LevelError, "list source directory "+src+": "+err.Error())
		return
	}

	for _, srcEntry := range srcEntries {
		name := srcEntry.Name()
		srcPath := filepath.Join(src, name)

		if op.cfg.Filter != nil && !op.cfg.Filter(srcPath) {
			op.logf(LevelInfo, "skipping filtered path "+srcPath)
			// Leave any matching destination entry in remaining: a filtered
			// path is treated as absent from the source, so step 4 below
			// deletes it if it already exists at the destination.
			continue
		}

		destPath := filepath.Join(dest, name)
		destEntry, destExisted := remaining[name]
		delete(remaining, name)

		srcInfo, err := srcEntry.Info()
		if err != nil {
			op.logf(LevelError, "stat source entry "+srcPath+": "+err.Error())
			continue
		}

		switch {
		case srcInfo.IsDir():
			op.pushDirTask(dirTask{src: srcPath, dest: destPath})

		case srcInfo.Mode().IsRegular():
			var destMeta fileMeta
			hasDest := false
			deleteBeforeCopy := false

			if destExisted {
				destInfo, err := destEntry.Info()
				if err != nil {
					if os.IsNotExist(err) {
						// Raced away between ReadDir and Info; treat as missing.
					} else {
						op.logf(LevelError, "stat destination entry "+destPath+": "+err.Error())
						continue
					}
				} else if destInfo.IsDir() {
					deleteBeforeCopy = true
				} else if destInfo.Mode().IsRegular() {
					hasDest = true
					destMeta = fileMeta{size: destInfo.Size(), modTime: destInfo.ModTime().UnixNano()}
				} else {
					op.logf(LevelInfo, "skipping file due to symlink/special at destination: "+srcPath)
					continue
				}
			}

			op.pushOpTask(opTask{
				kind:             opCopyIfNeeded,
				src:              srcPath,
				dest:             destPath,
				srcMeta:          fileMeta{size: srcInfo.Size(), modTime: srcInfo.ModTime().UnixNano(), createdTime: fileCreatedTime(srcInfo).UnixNano()},
				destMeta:         destMeta,
				hasDest:          hasDest,
				deleteBeforeCopy: deleteBeforeCopy,
			})

		default:
			// Symlinks and other special files at the source are not copied
			// in this revision (spec.md §1 Non-goals).
		}
	}

	// 4. Delete anything left in the destination that the source no longer
	// has (or that the filter excluded).
	for name, entry := range remaining {
		destPath := filepath.Join(dest, name)
		info, err := entry.Info()
		if err != nil {
			op.logf(LevelError, "stat extraneous destination entry "+destPath+": "+err.Error())
			continue
		}
		switch {
		case info.IsDir():
			op.pushOpTask(opTask{kind: opDeleteTree, path: destPath})
		case info.Mode().IsRegular():
			op.pushOpTask(opTask{kind: opDeleteFile, path: destPath})
		default:
			op.logf(LevelInfo, "skipping deletion of non-regular destination entry "+destPath)
		}
	}
}
