package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogSettings controls where logs go.
//
// Modes:
// - NoLogs=true  => console-only (stdout). No log files are created.
// - NoLogs=false => write logs to files under LogDir.
//
// Why this exists:
//   - Scheduled jobs usually need file logs (inspect a run after the fact).
//   - Interactive one-off runs sometimes prefer console-only output (no file
//     I/O, fewer permissions issues on a network share).
type LogSettings struct {
	NoLogs bool
	LogDir string
}

// LevelSuccess and LevelCount extend logrus's level set with two labels the
// original tool distinguished from a plain Info line: a successful terminal
// outcome, and an end-of-run summary counter. logrus has no native level for
// either, so both are logged at logrus.InfoLevel with a "levelName" field
// carrying the distinction through to the file-routing hooks.
const (
	LevelSuccess = "SUCCESS"
	LevelCount   = "COUNT"
)

// Logger is a lightweight, goroutine-safe logger intended for:
// - a single shared instance across the entire app
// - safe concurrent writes from multiple job workers
//
// Thread safety model:
//   - logrus.Logger already serializes calls to its output Writer and hooks,
//     so no additional locking is needed here beyond what logrus provides.
type Logger struct {
	// ConfigDir is where we look for logging.json (enabled/disabled log levels).
	ConfigDir string

	settings LogSettings
	levels   map[string]bool
	logrus   *logrus.Logger
}

// New initializes a Logger.
//
// Behavior:
// - Reads configDir/logging.json (if present) to determine enabled log levels.
// - If logging.json is missing, sensible defaults are used (see loadLevels).
// - If settings.NoLogs is false:
//   - settings.LogDir must be set
//   - the directory is created if needed (fail early if invalid/unwritable)
//
// Notes:
//   - Creating LogDir early is helpful for scheduled runs: if permissions are
//     wrong, we fail fast at startup instead of silently losing logs.
//   - For network destinations, mkdir failure is a strong signal of access
//     or permission problems before any sync work starts.
func New(configDir string, settings LogSettings) (*Logger, error) {
	levels, err := loadLevels(configDir)
	if err != nil {
		return nil, err
	}

	if !settings.NoLogs {
		if settings.LogDir == "" {
			return nil, fmt.Errorf("log dir is empty (settings.LogDir)")
		}
		if err := os.MkdirAll(settings.LogDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	base := logrus.New()
	// Level gating is done by Enabled/logging.json; logrus must not drop
	// DEBUG on its own.
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "01/02/06 15:04:05",
	})

	if settings.NoLogs {
		base.SetOutput(os.Stdout)
	} else {
		base.SetOutput(&dailyFileWriter{dir: settings.LogDir, prefix: "mirrorsync"})
		base.AddHook(&taggedFileHook{dir: settings.LogDir, prefix: "errors", level: logrus.ErrorLevel})
		base.AddHook(&taggedFileHook{dir: settings.LogDir, prefix: "count", levelName: LevelCount})
	}

	return &Logger{
		ConfigDir: configDir,
		settings:  settings,
		levels:    levels,
		logrus:    base,
	}, nil
}

// loadLevels loads log-level enable/disable configuration from logging.json.
//
// If logging.json does not exist, default levels are returned:
// - INFO/WARN/ERROR/SUCCESS/FATAL enabled
// - COUNT enabled (used for end-of-run summary counters)
// - DEBUG disabled (to avoid noisy scheduled runs)
//
// Policy for unknown levels (fail-open):
//   - If code introduces a new level and logging.json hasn't been updated yet,
//     it's safer to log than to silently drop messages.
func loadLevels(configDir string) (map[string]bool, error) {
	path := filepath.Join(configDir, "logging.json")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{
				"DEBUG":   false,
				"COUNT":   true,
				"INFO":    true,
				"WARN":    true,
				"ERROR":   true,
				"SUCCESS": true,
				"FATAL":   true,
			}, nil
		}
		return nil, fmt.Errorf("stat logging config: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logging config: %w", err)
	}

	var levels map[string]bool
	if err := json.Unmarshal(b, &levels); err != nil {
		return nil, fmt.Errorf("parse logging config: %w", err)
	}
	return levels, nil
}

// Enabled returns whether a log level is enabled.
//
// Policy:
// - If the level exists in config and is false => disabled.
// - If the level does not exist in config => enabled (fail-open).
func (l *Logger) Enabled(level string) bool {
	level = strings.ToUpper(strings.TrimSpace(level))

	enabled, ok := l.levels[level]
	if ok && !enabled {
		return false
	}
	return true
}

// Log writes a single log line at the named level, gated by logging.json and
// routed through logrus (and, in file mode, the per-level file hooks).
func (l *Logger) Log(level, msg string) {
	level = strings.ToUpper(strings.TrimSpace(level))

	if !l.Enabled(level) {
		return
	}

	entry := l.logrus.WithField("levelName", level)
	switch level {
	case "DEBUG":
		entry.Debug(msg)
	case "WARN":
		entry.Warn(msg)
	case "ERROR":
		entry.Error(msg)
	case "FATAL":
		entry.Fatal(msg) // logrus.Fatal calls os.Exit(1) after firing hooks
	default: // INFO, SUCCESS, COUNT all land at logrus.InfoLevel
		entry.Info(msg)
	}
}

func (l *Logger) Debug(msg string)   { l.Log("DEBUG", msg) }
func (l *Logger) Info(msg string)    { l.Log("INFO", msg) }
func (l *Logger) Warn(msg string)    { l.Log("WARN", msg) }
func (l *Logger) Error(msg string)   { l.Log("ERROR", msg) }
func (l *Logger) Success(msg string) { l.Log(LevelSuccess, msg) }
func (l *Logger) Count(msg string)   { l.Log(LevelCount, msg) }
func (l *Logger) Fatal(msg string)   { l.Log("FATAL", msg) }

func (l *Logger) Debugf(format string, args ...any)   { l.Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)    { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Countf(format string, args ...any)   { l.Count(fmt.Sprintf(format, args...)) }
func (l *Logger) Fatalf(format string, args ...any)   { l.Fatal(fmt.Sprintf(format, args...)) }

// dailyFileWriter is an io.Writer that rotates to a new file named
// <prefix>_YYYY-MM-DD.log whenever the current date changes, matching the
// original tool's stable-per-day log naming so scheduled runs are easy to
// locate after the fact.
type dailyFileWriter struct {
	dir    string
	prefix string

	mu   sync.Mutex
	date string
	file *os.File
}

func (w *dailyFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	date := time.Now().Format("2006-01-02")
	if w.file == nil || date != w.date {
		if w.file != nil {
			w.file.Close()
		}
		path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix, date))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return 0, err
		}
		w.file = f
		w.date = date
	}
	return w.file.Write(p)
}

// taggedFileHook duplicates matching entries into a second daily-rotating
// file, mirroring the original tool's errors_YYYY-MM-DD.log and
// count_YYYY-MM-DD.log side files. A hook matches either by logrus.Level
// (when levelName is empty) or by the "levelName" field the Logger attaches
// to every entry; the two matching modes exist because SUCCESS/COUNT are not
// real logrus levels.
type taggedFileHook struct {
	dir       string
	prefix    string
	level     logrus.Level
	levelName string

	writer *dailyFileWriter
	once   sync.Once
}

func (h *taggedFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *taggedFileHook) Fire(entry *logrus.Entry) error {
	if h.levelName != "" {
		if name, _ := entry.Data["levelName"].(string); name != h.levelName {
			return nil
		}
	} else if entry.Level != h.level {
		return nil
	}

	h.once.Do(func() {
		h.writer = &dailyFileWriter{dir: h.dir, prefix: h.prefix}
	})

	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}
