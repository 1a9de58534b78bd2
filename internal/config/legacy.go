package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jminer/mirror-sync/internal/logging"
)

// LoadLegacyJob reads a teacher-era config.ini and converts it into a
// single Job, so a site previously running the old per-folder cleanup tool
// can migrate to mirror-sync without hand-authoring jobs.yaml from scratch.
//
// config.ini format (unchanged from the legacy tool):
//
//	[backup]
//	path=D:\backups
//
//	[paths]
//	; one entry per line, optionally "path, yes" / "path, no"
//	C:\temp\old, yes
//	\\server\share\incoming, no
//
// Translation: the [backup] path becomes the common destination root; each
// [paths] entry that is a directory becomes one DirectoryPair, mirrored
// into backupRoot/<base name of the source path>. File entries (a single
// file rather than a folder) have no destination-directory equivalent in
// mirror-sync's directory-pair model and are skipped with a warning -
// migrate those by hand into a directory pair naming their parent folder.
// A "no" (backup disabled) entry is skipped entirely: this tool only ever
// mirrors to a destination, it never deletes-without-copying.
func LoadLegacyJob(name, configIniPath string, log *logging.Logger) (Job, error) {
	b, err := os.ReadFile(configIniPath)
	if err != nil {
		return Job{}, fmt.Errorf("read %s: %w", configIniPath, err)
	}

	content := string(b)
	if len(content) > 2 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:] // strip UTF-8 BOM
	}

	sections, standaloneLines, err := parseIniSections(content)
	if err != nil {
		return Job{}, fmt.Errorf("parse %s: %w", configIniPath, err)
	}

	backupSection, ok := sections["backup"]
	if !ok {
		return Job{}, fmt.Errorf("missing [backup] section in %s", configIniPath)
	}
	backupRoot, ok := backupSection["path"]
	if !ok || backupRoot == "" {
		return Job{}, fmt.Errorf("missing 'path' key in [backup] section of %s", configIniPath)
	}

	entries, err := parsePathsSection(log, sections["paths"], standaloneLines["paths"])
	if err != nil {
		return Job{}, err
	}

	job := Job{
		Name:                 name,
		ParallelCopies:       1,
		CopyIfSizeMismatched: true,
	}
	for _, e := range entries {
		if !e.backup {
			log.Infof("legacy entry %s has backup disabled; skipping (mirror-sync always mirrors)", e.path)
			continue
		}
		if !e.isDir {
			log.Warnf("legacy entry %s is a single file; mirror-sync mirrors directories, skipping", e.path)
			continue
		}
		job.Directories = append(job.Directories, DirectoryPair{
			Source:      e.path,
			Destination: filepath.Join(backupRoot, filepath.Base(e.path)),
		})
	}

	if len(job.Directories) == 0 {
		return Job{}, fmt.Errorf("%s: no directory entries could be migrated", configIniPath)
	}
	return job, nil
}

// parseIniSections parses a simple INI-style config file.
// Returns a map of section name to key-value pairs and a list of standalone
// lines (the [paths] section allows bare path lines, not just key=value).
func parseIniSections(content string) (map[string]map[string]string, map[string][]string, error) {
	sections := make(map[string]map[string]string)
	standaloneLines := make(map[string][]string)
	var currentSection string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sectionName := strings.Trim(line, "[]")
			if sectionName == "" {
				return nil, nil, fmt.Errorf("empty section name")
			}
			currentSection = sectionName
			sections[currentSection] = make(map[string]string)
			continue
		}

		if strings.HasPrefix(line, ";") {
			continue
		}

		if currentSection == "" {
			return nil, nil, fmt.Errorf("line outside of section: %s", line)
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])
				sections[currentSection][key] = value
			}
		} else {
			standaloneLines[currentSection] = append(standaloneLines[currentSection], line)
		}
	}

	return sections, standaloneLines, nil
}

type legacyPathEntry struct {
	path   string
	backup bool
	isDir  bool
}

// parsePathsSection parses the [paths] section entries, same "path" /
// "path, yes" / "path, no" grammar the legacy tool used.
func parsePathsSection(log *logging.Logger, section map[string]string, standalone []string) ([]legacyPathEntry, error) {
	var pathsContent string
	if content, ok := section["paths"]; ok && content != "" {
		pathsContent = content
	} else {
		pathsContent = strings.Join(standalone, "\n")
	}

	var entries []legacyPathEntry
	for _, line := range strings.Split(pathsContent, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		path, backup, err := parsePathLine(line)
		if err != nil {
			log.Warnf("skipping malformed line in config.ini [paths]: %s (error: %v)", line, err)
			continue
		}

		isDir := true
		if fi, err := os.Stat(path); err == nil {
			isDir = fi.IsDir()
		}

		entries = append(entries, legacyPathEntry{path: path, backup: backup, isDir: isDir})
	}

	return entries, nil
}

// parsePathLine parses a single path entry from the [paths] section:
// "path", "path, yes", or "path, no". An unrecognized backup setting
// defaults to enabled, matching the legacy tool's behavior.
func parsePathLine(line string) (path string, backup bool, err error) {
	if !strings.Contains(line, ",") {
		return strings.TrimSpace(line), true, nil
	}

	parts := strings.SplitN(line, ",", 2)
	path = strings.TrimSpace(parts[0])
	if path == "" {
		return "", false, fmt.Errorf("empty path in line: %s", line)
	}

	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "no", "n", "false", "0":
		return path, false, nil
	default:
		return path, true, nil
	}
}
