// Package audit provides an append-only log of hook decisions.
//
// Each hook invocation appends at most one JSON line. The log is never read
// back by the hooks; it exists for developers inspecting what was blocked or
// rewritten. Appends and rotation are serialized across processes with a lock
// file next to the log.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

// Version is the audit entry format version.
const Version = 1

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

const (
	backupTimeFormat = "20060102T150405.000000000"
	lockSuffix       = ".lock"
	backupSuffix     = ".gz"

	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// Entry represents a single audit log line.
type Entry struct {
	Version     int     `json:"version"`
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	DurationMs  float64 `json:"duration_ms"`
	Stage       string  `json:"stage"`
	ToolName    string  `json:"tool_name"`
	FilePath    string  `json:"file_path,omitempty"`
	Outcome     string  `json:"outcome"`
	RuleName    string  `json:"rule_name,omitempty"`
	Message     string  `json:"message,omitempty"`
	SessionID   string  `json:"session_id,omitempty"`
	ToolUseID   string  `json:"tool_use_id,omitempty"`
	Cwd         string  `json:"cwd,omitempty"`
	ConfigPath  string  `json:"config_path,omitempty"`
	ConfigError string  `json:"config_error,omitempty"`
}

// Options configures a Logger.
type Options struct {
	// Path is the log file; DefaultLogPath is used when empty.
	Path string
	// MaxBytes triggers rotation once the log would grow past it. Zero disables rotation.
	MaxBytes int64
	// MaxBackups is the number of rotated archives kept.
	MaxBackups int
	// Now returns the current time (defaults to time.Now).
	Now func() time.Time
}

// Logger appends entries to an audit log file.
type Logger struct {
	path       string
	maxBytes   int64
	maxBackups int
	now        func() time.Time
	lock       *flock.Flock
}

// DefaultLogPath returns the default audit log path (~/.local/share/claude-hooks/audit.log).
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "claude-hooks", "audit.log"), nil
}

// New creates a Logger, creating the log directory if needed.
func New(opts Options) (*Logger, error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default audit log path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Logger{
		path:       path,
		maxBytes:   opts.MaxBytes,
		maxBackups: opts.MaxBackups,
		now:        now,
		lock:       flock.New(path + lockSuffix),
	}, nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an entry, filling in version, ID and timestamp.
func (l *Logger) Log(entry Entry) error {
	entry.Version = Version
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Timestamp = l.now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}
	data = append(data, '\n')

	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock audit log: %w", err)
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			logger.Debug("failed to unlock audit log", "error", err)
		}
	}()

	if err := l.rotateIfNeeded(int64(len(data))); err != nil {
		// Keep appending to the current file; a missed rotation only costs space.
		logger.Debug("failed to rotate audit log", "path", l.path, "error", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

func (l *Logger) rotateIfNeeded(incoming int64) error {
	if l.maxBytes <= 0 {
		return nil
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() == 0 || info.Size()+incoming <= l.maxBytes {
		return nil
	}

	if err := l.archive(); err != nil {
		return err
	}
	if err := os.Truncate(l.path, 0); err != nil {
		return fmt.Errorf("failed to truncate audit log: %w", err)
	}
	return l.prune()
}

// archive compresses the current log into a timestamped .gz file.
func (l *Logger) archive() error {
	src, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to open audit log for rotation: %w", err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.%s%s", l.path, l.now().UTC().Format(backupTimeFormat), backupSuffix)
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("failed to create audit backup: %w", err)
	}
	defer dst.Close()

	zw := gzip.NewWriter(dst)
	zw.Name = filepath.Base(l.path)
	if _, err := io.Copy(zw, src); err != nil {
		return fmt.Errorf("failed to compress audit log: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish audit backup: %w", err)
	}
	return nil
}

func (l *Logger) prune() error {
	backups, err := l.Backups()
	if err != nil {
		return err
	}
	if l.maxBackups < 0 || len(backups) <= l.maxBackups {
		return nil
	}

	for _, old := range backups[:len(backups)-l.maxBackups] {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove old audit backup %s: %w", old, err)
		}
	}
	return nil
}

// Backups returns the rotated archives, oldest first.
func (l *Logger) Backups() ([]string, error) {
	matches, err := filepath.Glob(l.path + ".*" + backupSuffix)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
