package main

import (
	"log"
	"net/http"
	"os"

	"tf2-trader/internal/api"
	"tf2-trader/internal/app"
	"tf2-trader/internal/applog"
	"tf2-trader/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	log.SetOutput(applog.New(cfg.Paths().LogsDir(), os.Stderr))
	defer func() {
		if r := recover(); r != nil {
			log.Print(applog.Recovered("server", r))
			os.Exit(1)
		}
	}()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize services: ", err)
	}
	defer a.Close()

	if snap, err := a.Engine.LoadCached(); err == nil && snap != nil {
		log.Printf("Cached dashboard from %s: %d stacks, %.2f ref", snap.SavedAt.Format("2006-01-02 15:04"), snap.TotalStacks, snap.TotalRef)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api/v1")
	services := api.Services{
		Engine:         a.Engine,
		Settings:       a.Settings,
		Schema:         a.Schema,
		RefreshTimeout: cfg.RefreshTimeout,
	}
	// A nil *history.Store must not become a non-nil interface.
	if a.History != nil {
		services.History = a.History
	}
	api.SetupRoutes(apiGroup, services)

	log.Printf("Server starting on port %s (cache: %s)", cfg.Port, cfg.CacheDir)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Print("Server stopped: ", err)
	}
}
