package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cityweather.app/internal/ports"
)

// FileLoggerAdapter implements structured JSON logging to files
type FileLoggerAdapter struct {
	filePath string
	file     *os.File
	logger   *slog.Logger
	mutex    sync.Mutex
}

// NewFileLoggerAdapter creates a new file logger adapter. Entries are
// appended as JSON lines with timestamp, level and message keys.
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: renameFileLogAttr,
	})

	return &FileLoggerAdapter{
		filePath: logPath,
		file:     file,
		logger:   slog.New(handler),
	}, nil
}

func renameFileLogAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// Debug logs a debug message to file
func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelDebug, msg, fields)
}

// Info logs an info message to file
func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelInfo, msg, fields)
}

// Warn logs a warning message to file
func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelWarn, msg, fields)
}

// Error logs an error message to file
func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelError, msg, fields)
}

func (f *FileLoggerAdapter) writeLogEntry(level slog.Level, msg string, fields []ports.Field) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return
	}
	f.logger.LogAttrs(context.Background(), level, msg, toAttrs(fields)...)
}

// Path returns the file entries are written to
func (f *FileLoggerAdapter) Path() string {
	return f.filePath
}

// Close closes the underlying file. Entries logged afterwards are dropped.
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
