// Package applog appends log lines to a daily file.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer is an io.Writer for the standard logger. Each Write appends to
// <dir>/YYYY-MM-DD.log under a lock and echoes to an optional second writer.
type Writer struct {
	mu   sync.Mutex
	dir  string
	echo io.Writer
	now  func() time.Time
}

func New(dir string, echo io.Writer) *Writer {
	return &Writer{dir: dir, echo: echo, now: time.Now}
}

// CurrentPath is today's log file.
func (w *Writer) CurrentPath() string {
	return filepath.Join(w.dir, w.now().Format("2006-01-02")+".log")
}

// Write never fails; a broken log file must not take the caller down.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.echo != nil {
		w.echo.Write(p)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return len(p), nil
	}
	f, err := os.OpenFile(w.CurrentPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return len(p), nil
	}
	defer f.Close()
	f.Write(p)
	return len(p), nil
}

// Recovered formats a recovered panic value for logging.
func Recovered(context string, r any) string {
	return fmt.Sprintf("%s: unhandled panic: %v", context, r)
}
