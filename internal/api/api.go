package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tf2-trader/internal/history"
	"tf2-trader/internal/models"
	"tf2-trader/internal/report"
	"tf2-trader/internal/services/schema"
	"tf2-trader/internal/services/settings"
	"tf2-trader/internal/valuation"
)

type Refresher interface {
	Refresh(ctx context.Context) (*models.DashboardSnapshot, error)
	LoadCached() (*models.DashboardSnapshot, error)
	Running() bool
}

type SettingsStore interface {
	Load() (models.Settings, error)
	Save(models.Settings) error
}

type SchemaCatalog interface {
	LoadIndex() *schema.Index
	LocalIconPath(defindex int) string
	ImportFromFile(path string) error
}

type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]models.ValuationRecord, error)
}

// Services are the collaborators behind the HTTP API. History may be nil.
type Services struct {
	Engine         Refresher
	Settings       SettingsStore
	Schema         SchemaCatalog
	History        HistoryLister
	RefreshTimeout time.Duration
}

type APIHandler struct {
	svc Services

	errMu       sync.Mutex
	lastError   string
	lastErrorAt time.Time
}

func SetupRoutes(r *gin.RouterGroup, svc Services) *APIHandler {
	if svc.RefreshTimeout <= 0 {
		svc.RefreshTimeout = 60 * time.Second
	}
	handler := &APIHandler{svc: svc}

	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", handler.GetDashboard)
		dashboard.POST("/refresh", handler.RefreshDashboard)
		dashboard.GET("/report", handler.GetReport)
	}

	r.GET("/settings", handler.GetSettings)
	r.PUT("/settings", handler.UpdateSettings)

	schemaGroup := r.Group("/schema")
	{
		schemaGroup.GET("", handler.GetSchema)
		schemaGroup.POST("/import", handler.ImportSchema)
	}

	r.GET("/icons/:defindex", handler.GetIcon)
	r.GET("/history", handler.GetHistory)
	r.GET("/status", handler.GetStatus)

	return handler
}

func (h *APIHandler) recordError(context string, err error) {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	h.lastError = fmt.Sprintf("%s: %v", context, err)
	h.lastErrorAt = time.Now()
	log.Printf("api: %s", h.lastError)
}

// GetDashboard returns the last persisted snapshot without refreshing.
func (h *APIHandler) GetDashboard(c *gin.Context) {
	snap, err := h.svc.Engine.LoadCached()
	if err != nil {
		h.recordError("load cached dashboard", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached dashboard, refresh first"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RefreshDashboard runs a full refresh bounded by the refresh timeout.
func (h *APIHandler) RefreshDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.svc.RefreshTimeout)
	defer cancel()

	snap, err := h.svc.Engine.Refresh(ctx)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, snap)
	case errors.Is(err, valuation.ErrRefreshInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		h.recordError("refresh", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "refresh timed out"})
	case errors.Is(err, context.Canceled):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "refresh cancelled"})
	default:
		h.recordError("refresh", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetReport renders the cached snapshot as an HTML page.
func (h *APIHandler) GetReport(c *gin.Context) {
	snap, err := h.svc.Engine.LoadCached()
	if err != nil || snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached dashboard, refresh first"})
		return
	}
	body, err := report.HTML(report.Markdown(snap, 50))
	if err != nil {
		h.recordError("render report", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	page := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Backpack valuation</title></head><body>" +
		string(body) + "</body></html>"
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *APIHandler) GetSettings(c *gin.Context) {
	st, err := h.svc.Settings.Load()
	if err != nil {
		h.recordError("load settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings.Redact(st))
}

func (h *APIHandler) UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	current, err := h.svc.Settings.Load()
	if err != nil {
		h.recordError("load settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Settings.Save(settings.KeepMasked(current, req)); err != nil {
		h.recordError("save settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *APIHandler) GetSchema(c *gin.Context) {
	index := h.svc.Schema.LoadIndex()
	if index == nil {
		c.JSON(http.StatusOK, gin.H{"status": valuation.StatusSchemaMissing, "path": "", "count": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": valuation.StatusSchemaLoaded, "path": index.Path, "count": len(index.Map)})
}

// ImportSchema copies a schema_items.json (and its icons) into the cache.
func (h *APIHandler) ImportSchema(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.Schema.ImportFromFile(req.Path)
	switch {
	case err == nil:
	case errors.Is(err, schema.ErrPathRequired), errors.Is(err, schema.ErrSchemaNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		h.recordError("import schema", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.GetSchema(c)
}

func (h *APIHandler) GetIcon(c *gin.Context) {
	defindex, err := strconv.Atoi(c.Param("defindex"))
	if err != nil || defindex < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid defindex"})
		return
	}
	path := h.svc.Schema.LocalIconPath(defindex)
	if path == "" {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func (h *APIHandler) GetHistory(c *gin.Context) {
	if h.svc.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled, set DATABASE_URL"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.svc.History.Recent(c.Request.Context(), limit)
	if err != nil {
		h.recordError("list history", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "trend": history.ComputeTrend(records)})
}

func (h *APIHandler) GetStatus(c *gin.Context) {
	h.errMu.Lock()
	lastError, lastErrorAt := h.lastError, h.lastErrorAt
	h.errMu.Unlock()

	resp := gin.H{
		"refreshing": h.svc.Engine.Running(),
		"last_error": lastError,
	}
	if !lastErrorAt.IsZero() {
		resp["last_error_at"] = lastErrorAt
	}
	c.JSON(http.StatusOK, resp)
}
