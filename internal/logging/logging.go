// Package logging writes debug diagnostics to a timestamped file so the
// terminal stays owned by the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	output io.Writer
	file   *os.File
	dir    string
)

// SetDir changes the directory used for the lazily opened log file.
// It has no effect once the file is open.
func SetDir(path string) {
	mu.Lock()
	defer mu.Unlock()
	dir = path
}

// SetOutput redirects all log lines to w. Passing nil restores the default
// file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// open creates ~/.focusflow/logs/focusflow_<time>.log on first use.
func open() (io.Writer, error) {
	if output != nil {
		return output, nil
	}
	if file != nil {
		return file, nil
	}

	logDir := dir
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		logDir = filepath.Join(homeDir, ".focusflow", "logs")
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("focusflow_%s.log",
		time.Now().Format("2006-01-02_15-04-05")))

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	file = f
	return file, nil
}

// Debugf writes a debug-level message. Failures to open the log are dropped.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	w, err := open()
	if err != nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "[%s] %s\n", timestamp, msg)
}

// Error logs err with context if it is non-nil.
func Error(context string, err error) {
	if err != nil {
		Debugf("%s: %v", context, err)
	}
}

// Close flushes and closes the log file, if one was opened.
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
