// Package logging builds the zap-backed logr.Logger. The terminal belongs
// to the TUI, so logs go to a file.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	ComponentKey = "component"
)

// Logger owns the zap logger behind a logr.Logger.
type Logger struct {
	logr.Logger
	zap  *zap.Logger
	file *os.File
}

// DefaultPath returns $XDG_STATE_HOME/tagdeck/tagdeck.log.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "tagdeck", "tagdeck.log")
}

// ParseLevel maps "debug", "info", "warn" and "error" to a zap level.
// Unknown names give info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// Open appends JSON log lines to path at the given level.
func Open(path string, level zapcore.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(level),
	)
	z := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	return &Logger{Logger: zapr.NewLogger(z), zap: z, file: f}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: logr.Discard()}
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(component string) logr.Logger {
	return l.WithName(component).WithValues(ComponentKey, component)
}

// Close flushes buffered entries and closes the file.
func (l *Logger) Close() error {
	if l.zap == nil {
		return nil
	}
	err := l.zap.Sync()
	if err != nil && isIgnorableSyncError(err) {
		err = nil
	}
	return errors.Join(err, l.file.Close())
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF)
}
