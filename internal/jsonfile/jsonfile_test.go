package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestReadMissing(t *testing.T) {
	var d doc
	ok, err := Read(filepath.Join(t.TempDir(), "missing.json"), &d)
	if err != nil || ok {
		t.Errorf("Read() = %v, %v; want false, nil", ok, err)
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	if err := Write(path, doc{Name: "key", Count: 3}); err != nil {
		t.Fatalf("Write() unexpected error = %v", err)
	}
	var got doc
	ok, err := Read(path, &got)
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v", ok, err)
	}
	if got != (doc{Name: "key", Count: 3}) {
		t.Errorf("Read() = %+v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the target file", len(entries))
	}
}

func TestReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var d doc
	if ok, err := Read(path, &d); err == nil || ok {
		t.Errorf("Read() = %v, %v; want an error", ok, err)
	}
}
