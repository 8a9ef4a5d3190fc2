package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	CacheDir    string
	PortableDir string
	DatabaseURL string // empty disables valuation history
	Port        string
	Environment string

	// Used as settings when no settings.json has been saved yet
	SteamID64        string
	SteamAPIKey      string
	BackpackTFAPIKey string

	BackpackTFURL     string
	PricesMirrorURL   string
	SteamInventoryURL string
	UserAgent         string

	HTTPTimeout    time.Duration
	RefreshTimeout time.Duration
}

func Load() *Config {
	return &Config{
		CacheDir:    getEnv("TFDB_CACHE_DIR", defaultCacheDir()),
		PortableDir: getEnv("TFDB_PORTABLE_DIR", defaultPortableDir()),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		SteamID64:        getEnv("STEAM_ID64", ""),
		SteamAPIKey:      getEnv("STEAM_API_KEY", ""),
		BackpackTFAPIKey: getEnv("BACKPACK_TF_API_KEY", ""),

		BackpackTFURL:     getEnv("BACKPACK_TF_URL", "https://backpack.tf/api/IGetPrices/v4"),
		PricesMirrorURL:   getEnv("PRICES_MIRROR_URL", "https://prices.tf/api/IGetPrices/v4"),
		SteamInventoryURL: getEnv("STEAM_INVENTORY_URL", "https://api.steampowered.com/IEconItems_440/GetPlayerItems/v1/"),
		UserAgent:         getEnv("USER_AGENT", "tf2-trader/0.1"),

		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 30*time.Second),
		RefreshTimeout: getDuration("REFRESH_TIMEOUT", 60*time.Second),
	}
}

// Paths returns the on-disk layout rooted at the configured directories.
func (c *Config) Paths() Paths {
	return Paths{CacheRoot: c.CacheDir, PortableRoot: c.PortableDir}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tf2-trader")
	}
	return filepath.Join(dir, "tf2-trader")
}

func defaultPortableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
