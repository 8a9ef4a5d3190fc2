package database

import (
	"path/filepath"
	"testing"

	"tf2-trader/internal/models"
)

func TestIsSQLite(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"history.db", true},
		{"/var/lib/tfdb/history.db", true},
		{"file:history?mode=memory", true},
		{"user:pass@tcp(127.0.0.1:3306)/tfdb?parseTime=True", false},
	}
	for _, tt := range tests {
		if got := isSQLite(tt.url); got != tt.want {
			t.Errorf("isSQLite(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestInitializeSQLite(t *testing.T) {
	if _, err := Initialize(""); err == nil {
		t.Error("Initialize(\"\") succeeded")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Initialize() unexpected error = %v", err)
	}
	if !db.Migrator().HasTable(&models.ValuationRecord{}) {
		t.Error("valuation_records table missing after Initialize")
	}
}
