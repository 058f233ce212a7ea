// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

var (
	mu   sync.RWMutex
	base zerolog.Logger
	file *os.File
)

// Options controls where and how log lines are written.
type Options struct {
	// Dir, when set, receives a timestamped log file in addition to stdout.
	Dir string
	// JSON switches from the human console format to one JSON object per line.
	JSON bool
	// Stdout overrides os.Stdout, mainly for tests.
	Stdout io.Writer
}

// levelWriter turns each line written by a *log.Logger into a zerolog event.
type levelWriter struct {
	level zerolog.Level
}

func (w levelWriter) Write(p []byte) (int, error) {
	mu.RLock()
	l := base
	mu.RUnlock()
	l.WithLevel(w.level).Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Creates a timestamped log file in opts.Dir when one is given.
// - Writes logs to both the file and stdout.
// - Configures the Info, Warn, Error and Debug loggers with file:line prefixes.
func InitLogger(opts Options) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	var f *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0700); err != nil {
			return err
		}
		name := filepath.Join(opts.Dir, time.Now().Format("2006-01-02_15-04-05")+".log")
		var err error
		f, err = os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
		if err != nil {
			return err
		}
		// the file always gets JSON so it can be shipped as-is
		out = zerolog.MultiLevelWriter(out, f)
	}

	mu.Lock()
	if file != nil {
		_ = file.Close()
	}
	file = f
	base = zerolog.New(out).With().Timestamp().Logger()
	mu.Unlock()

	Info = log.New(levelWriter{zerolog.InfoLevel}, "", log.Lshortfile)
	Warn = log.New(levelWriter{zerolog.WarnLevel}, "", log.Lshortfile)
	Error = log.New(levelWriter{zerolog.ErrorLevel}, "", log.Lshortfile)
	Debug = log.New(levelWriter{zerolog.DebugLevel}, "", log.Lshortfile)
	return nil
}

// SetLogLevel adjusts output depending on environment. Production drops
// debug output entirely; every other environment keeps it.
func SetLogLevel(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		Debug.SetOutput(io.Discard)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	Debug.SetOutput(levelWriter{zerolog.DebugLevel})
}

// Log returns the structured logger for callers that want fields
// instead of formatted strings.
func Log() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// init gives every package working stdout loggers before main configures
// the real ones, so tests never need to call InitLogger.
func init() {
	if err := InitLogger(Options{}); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
