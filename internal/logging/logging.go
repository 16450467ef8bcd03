// Package logging owns the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written inside Config.Dir.
const FileName = "momentum.log"

// Logger is the global logger. It is nil until Init runs; the helpers below
// are no-ops in that case.
var Logger *log.Logger

var file *lumberjack.Logger

// Config controls where and how much is logged.
type Config struct {
	Debug bool
	Dir   string
}

// Init sets up the global logger writing to a rotating file in cfg.Dir, and
// to stderr as well in debug mode.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	Close()
	file = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, FileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var w io.Writer = file
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, file)
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "momentum",
	})
	return nil
}

// Close flushes and releases the log file. Logging after Close is a no-op.
func Close() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
	Logger = nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
