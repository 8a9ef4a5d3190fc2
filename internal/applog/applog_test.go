package applog

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWriterAppendsDailyFile(t *testing.T) {
	var echo bytes.Buffer
	w := New(t.TempDir(), &echo)
	w.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	logger := log.New(w, "", 0)
	logger.Println("first")
	logger.Println("second")

	if !strings.HasSuffix(w.CurrentPath(), "2026-10-16.log") {
		t.Errorf("CurrentPath() = %q", w.CurrentPath())
	}
	data, err := os.ReadFile(w.CurrentPath())
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "first\nsecond\n" {
		t.Errorf("log file = %q", got)
	}
	if echo.String() != "first\nsecond\n" {
		t.Errorf("echo = %q", echo.String())
	}
}

func TestWriterConcurrentLines(t *testing.T) {
	w := New(t.TempDir(), nil)
	logger := log.New(w, "", 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Printf("line %02d %s", i, strings.Repeat("x", 200))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(w.CurrentPath())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, l := range lines {
		if len(l) != len(fmt.Sprintf("line %02d ", 0))+200 {
			t.Errorf("interleaved line %q", l)
		}
	}
}
