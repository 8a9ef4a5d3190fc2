// Package settings persists the user's Steam and backpack.tf credentials.
package settings

import (
	"fmt"
	"strings"

	"tf2-trader/internal/jsonfile"
	"tf2-trader/internal/models"
)

type Store struct {
	path     string
	defaults models.Settings
}

// NewStore returns a store backed by path. defaults are used until the
// first Save, typically filled from the environment.
func NewStore(path string, defaults models.Settings) *Store {
	return &Store{path: path, defaults: defaults}
}

func (s *Store) Load() (models.Settings, error) {
	var st models.Settings
	found, err := jsonfile.Read(s.path, &st)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !found {
		return s.defaults, nil
	}
	return st, nil
}

func (s *Store) Save(st models.Settings) error {
	st.SteamID64 = strings.TrimSpace(st.SteamID64)
	st.SteamAPIKey = strings.TrimSpace(st.SteamAPIKey)
	st.BackpackTFAPIKey = strings.TrimSpace(st.BackpackTFAPIKey)
	if err := jsonfile.Write(s.path, st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// Redacted is the form of Settings that leaves the process over HTTP.
type Redacted struct {
	SteamID64           string `json:"steam_id64"`
	SteamAPIKey         string `json:"steam_api_key"`
	SteamAPIKeySet      bool   `json:"steam_api_key_set"`
	BackpackTFAPIKey    string `json:"backpack_tf_api_key"`
	BackpackTFAPIKeySet bool   `json:"backpack_tf_api_key_set"`
}

func Redact(st models.Settings) Redacted {
	return Redacted{
		SteamID64:           st.SteamID64,
		SteamAPIKey:         Mask(st.SteamAPIKey),
		SteamAPIKeySet:      st.SteamAPIKey != "",
		BackpackTFAPIKey:    Mask(st.BackpackTFAPIKey),
		BackpackTFAPIKeySet: st.BackpackTFAPIKey != "",
	}
}

// KeepMasked returns incoming with every key that still equals the masked
// form of the current key replaced by the current key, so a redacted form
// posted back unchanged does not overwrite the secrets.
func KeepMasked(current, incoming models.Settings) models.Settings {
	if incoming.SteamAPIKey != "" && incoming.SteamAPIKey == Mask(current.SteamAPIKey) {
		incoming.SteamAPIKey = current.SteamAPIKey
	}
	if incoming.BackpackTFAPIKey != "" && incoming.BackpackTFAPIKey == Mask(current.BackpackTFAPIKey) {
		incoming.BackpackTFAPIKey = current.BackpackTFAPIKey
	}
	return incoming
}
