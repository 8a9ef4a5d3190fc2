// Package app builds the service graph shared by the server and the CLI.
package app

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"tf2-trader/internal/cache"
	"tf2-trader/internal/config"
	"tf2-trader/internal/database"
	"tf2-trader/internal/history"
	"tf2-trader/internal/models"
	"tf2-trader/internal/services/prices"
	"tf2-trader/internal/services/schema"
	"tf2-trader/internal/services/settings"
	"tf2-trader/internal/services/steam"
	"tf2-trader/internal/services/transport"
	"tf2-trader/internal/valuation"
)

type App struct {
	Config   *config.Config
	Paths    config.Paths
	Settings *settings.Store
	Schema   *schema.Service
	Prices   *prices.Service
	Steam    *steam.SteamService
	Cache    *cache.Store
	Engine   *valuation.Engine
	History  *history.Store // nil without DATABASE_URL

	db *gorm.DB
}

// New wires every service from cfg. A configured but unreachable history
// database is an error.
func New(cfg *config.Config) (*App, error) {
	paths := cfg.Paths()
	client := transport.NewClient(cfg.HTTPTimeout, cfg.UserAgent)

	a := &App{
		Config: cfg,
		Paths:  paths,
		Settings: settings.NewStore(paths.SettingsPath(), models.Settings{
			SteamID64:        cfg.SteamID64,
			SteamAPIKey:      cfg.SteamAPIKey,
			BackpackTFAPIKey: cfg.BackpackTFAPIKey,
		}),
		Schema: schema.NewService(paths),
		Prices: prices.NewService(client, paths, cfg.BackpackTFURL, cfg.PricesMirrorURL),
		Steam:  steam.NewSteamService(client, cfg.SteamInventoryURL),
		Cache:  cache.NewStore(paths.DashboardCachePath()),
	}
	a.Engine = valuation.NewEngine(a.Settings, a.Schema, a.Prices, a.Steam, a.Cache)

	if cfg.DatabaseURL != "" {
		db, err := database.Initialize(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("history database: %w", err)
		}
		a.db = db
		a.History = history.NewStore(db)
		a.Engine.SetRecorder(a.History)
	} else {
		log.Println("DATABASE_URL not set, valuation history disabled")
	}

	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
