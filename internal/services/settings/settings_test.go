package settings

import (
	"path/filepath"
	"testing"

	"tf2-trader/internal/models"
)

func TestLoadDefaultsUntilSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	defaults := models.Settings{SteamAPIKey: "env-key"}
	s := NewStore(path, defaults)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if got != defaults {
		t.Errorf("Load() = %+v, want defaults %+v", got, defaults)
	}

	if err := s.Save(models.Settings{SteamID64: " 7656 ", SteamAPIKey: "k", BackpackTFAPIKey: "b "}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	want := models.Settings{SteamID64: "7656", SteamAPIKey: "k", BackpackTFAPIKey: "b"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "****"},
		{"abcd", "****"},
		{"ABCDEF0123456789", "****6789"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedact(t *testing.T) {
	got := Redact(models.Settings{SteamID64: "7656", SteamAPIKey: "ABCDEF0123456789"})
	want := Redacted{SteamID64: "7656", SteamAPIKey: "****6789", SteamAPIKeySet: true}
	if got != want {
		t.Errorf("Redact() = %+v, want %+v", got, want)
	}
}

func TestKeepMasked(t *testing.T) {
	current := models.Settings{SteamAPIKey: "ABCDEF0123456789", BackpackTFAPIKey: "bptf-secret-key"}
	tests := []struct {
		name     string
		incoming models.Settings
		want     models.Settings
	}{
		{
			"masked values keep secrets",
			models.Settings{SteamID64: "1", SteamAPIKey: "****6789", BackpackTFAPIKey: "****-key"},
			models.Settings{SteamID64: "1", SteamAPIKey: "ABCDEF0123456789", BackpackTFAPIKey: "bptf-secret-key"},
		},
		{
			"new values replace secrets",
			models.Settings{SteamAPIKey: "NEWKEY", BackpackTFAPIKey: "other"},
			models.Settings{SteamAPIKey: "NEWKEY", BackpackTFAPIKey: "other"},
		},
		{
			"empty clears",
			models.Settings{},
			models.Settings{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeepMasked(current, tt.incoming); got != tt.want {
				t.Errorf("KeepMasked() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
