// Package logging builds the zap logger shared by all importer components.
//
// The logger fans out to two sinks: a terse console stream for the user
// (INFO and above, DEBUG with verbose output) and a per-run log file that
// always captures DEBUG with timestamps and callers for later inspection.
// Components receive the logger through their constructors and name it
// after themselves; nothing in this module keeps a global logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control the logger sinks.
type Options struct {
	// Verbose lowers the console level to DEBUG.
	Verbose bool
	// FilePath, when set, receives every DEBUG+ record.
	FilePath string
	// Console defaults to os.Stdout.
	Console io.Writer
}

// FileName returns the per-run log file name, e.g. j2d-20240115-0930.log.
func FileName(now time.Time) string {
	return fmt.Sprintf("j2d-%s.log", now.Format("20060102-1504"))
}

// New builds the logger. The returned cleanup func flushes buffered records
// and closes the log file; call it once the run is over.
func New(opts Options) (*zap.SugaredLogger, func(), error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	consoleLevel := zapcore.InfoLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newConsoleEncoder(), zapcore.AddSync(console), consoleLevel),
	}

	var file *os.File
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "creating log directory")
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening log file %s", opts.FilePath)
		}
		file = f
		cores = append(cores, zapcore.NewCore(newFileEncoder(), zapcore.AddSync(file), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()

	cleanup := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}

	return logger, cleanup, nil
}

// newConsoleEncoder renders "LEVEL :: message".
func newConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " :: ",
	})
}

// newFileEncoder renders "time LEVEL logger caller message".
func newFileEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}
