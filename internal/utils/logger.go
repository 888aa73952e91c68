package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Logger struct {
	file   *os.File
	logger *log.Logger
	name   string
	debug  bool
}

// NewLogger returns a logger for the named component. Output goes to stdout and,
// when logsDir is not empty, to a timestamped file under logsDir/<name>.
func NewLogger(name, logsDir string, debug bool) (*Logger, error) {
	return newLogger(name, logsDir, debug, os.Stdout)
}

// NewWriterLogger logs to w only. Useful for tests and one-shot commands.
func NewWriterLogger(name string, w io.Writer, debug bool) *Logger {
	return &Logger{
		logger: log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		name:   name,
		debug:  debug,
	}
}

func newLogger(name, logsDir string, debug bool, stdout io.Writer) (*Logger, error) {
	if logsDir == "" {
		return NewWriterLogger(name, stdout, debug), nil
	}

	sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	componentDir := filepath.Join(logsDir, sanitized)
	if err := os.MkdirAll(componentDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(componentDir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := NewWriterLogger(name, io.MultiWriter(stdout, file), debug)
	l.file = file
	return l, nil
}

func (l *Logger) LogInfo(format string, v ...interface{}) {
	l.log("INFO", format, v...)
}

func (l *Logger) LogError(format string, v ...interface{}) {
	l.log("ERROR", format, v...)
}

func (l *Logger) LogDebug(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", format, v...)
}

func (l *Logger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] [%s] %s", level, l.name, message)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
