// Package valuation merges inventory, schema and prices into a dashboard
// snapshot.
package valuation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"tf2-trader/internal/models"
	"tf2-trader/internal/services/prices"
	"tf2-trader/internal/services/schema"
)

const (
	StatusSchemaLoaded  = "schema loaded"
	StatusSchemaMissing = "schema missing (import schema_items.json)"

	cachedItemsSuffix = " (loaded cached items)"
)

var ErrRefreshInProgress = errors.New("refresh already in progress")

type SettingsLoader interface {
	Load() (models.Settings, error)
}

type Catalog interface {
	LoadIndex() *schema.Index
	LocalIconPath(defindex int) string
}

type PriceSource interface {
	FetchRaw(ctx context.Context, apiKey string) ([]byte, string, error)
}

type InventorySource interface {
	FetchAndParse(ctx context.Context, apiKey, steamID64 string) ([]models.ItemStack, string, error)
}

type SnapshotStore interface {
	ReadSnapshot() (*models.DashboardSnapshot, error)
	WriteSnapshot(*models.DashboardSnapshot) error
}

// Recorder receives every persisted snapshot, e.g. to keep a value history.
type Recorder interface {
	Record(ctx context.Context, snap *models.DashboardSnapshot) error
}

type Engine struct {
	settings  SettingsLoader
	catalog   Catalog
	prices    PriceSource
	inventory InventorySource
	cache     SnapshotStore
	recorder  Recorder

	now     func() time.Time
	running atomic.Bool
}

func NewEngine(settings SettingsLoader, catalog Catalog, priceSource PriceSource, inventory InventorySource, cache SnapshotStore) *Engine {
	return &Engine{
		settings:  settings,
		catalog:   catalog,
		prices:    priceSource,
		inventory: inventory,
		cache:     cache,
		now:       time.Now,
	}
}

// SetRecorder enables history recording; nil disables it.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// Running reports whether a refresh is in flight.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// LoadCached returns the last persisted snapshot, nil if there is none.
func (e *Engine) LoadCached() (*models.DashboardSnapshot, error) {
	return e.cache.ReadSnapshot()
}

// Refresh fetches every source, values the inventory and persists the
// resulting snapshot before returning it. Unavailable sources only degrade
// the status strings. Errors are limited to cancellation, an overlapping
// call, unreadable settings and a failed snapshot write.
func (e *Engine) Refresh(ctx context.Context) (*models.DashboardSnapshot, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer e.running.Store(false)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st, err := e.settings.Load()
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	index := e.catalog.LoadIndex()
	schemaStatus := StatusSchemaMissing
	if index != nil {
		schemaStatus = StatusSchemaLoaded
	}

	raw, pricesStatus, err := e.prices.FetchRaw(ctx, st.BackpackTFAPIKey)
	if err != nil {
		return nil, err
	}
	priceMap := map[int]models.PriceEntry{}
	if len(bytes.TrimSpace(raw)) > 0 {
		var skipped int
		priceMap, skipped = prices.Parse(raw)
		pricesStatus = fmt.Sprintf("%s (map=%d, skippedComplex=%d)", pricesStatus, len(priceMap), skipped)
	}
	keyRef := prices.ResolveKeyRef(priceMap, prices.DefaultKeyRef)

	stacks, steamStatus, err := e.inventory.FetchAndParse(ctx, st.SteamAPIKey, st.SteamID64)
	if err != nil {
		return nil, err
	}
	if len(stacks) == 0 {
		stacks = e.cachedStacks()
		if len(stacks) > 0 {
			steamStatus += cachedItemsSuffix
		}
	}

	items := make([]models.EnrichedItem, 0, len(stacks))
	for _, stack := range stacks {
		items = append(items, Enrich(stack, index, priceMap, keyRef, e.catalog.LocalIconPath))
	}
	deals := FindDeals(items)
	totals := Summarize(items, keyRef)

	snap := &models.DashboardSnapshot{
		SavedAt:            e.now().UTC(),
		SteamStatus:        steamStatus,
		PricesStatus:       pricesStatus,
		SchemaStatus:       schemaStatus,
		KeyRef:             keyRef,
		TotalRef:           totals.TotalRef,
		TotalValueKeysPart: totals.KeysPart,
		TotalValueRefPart:  totals.RefPart,
		TotalStacks:        totals.Stacks,
		TotalItems:         totals.Items,
		PricedStacks:       totals.PricedStacks,
		DealsCount:         len(deals),
		KeysCount:          totals.KeysCount,
		RefinedCount:       totals.RefinedCount,
		Items:              items,
		Deals:              deals,
	}
	if index != nil {
		snap.SchemaPath = index.Path
		snap.SchemaCount = len(index.Map)
	}

	if err := e.cache.WriteSnapshot(snap); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if e.recorder != nil {
		if err := e.recorder.Record(ctx, snap); err != nil {
			log.Printf("valuation: recording history failed: %v", err)
		}
	}

	log.Printf("valuation: %d stacks, %d priced, %d deals, key=%.2f ref [%s | %s | %s]",
		snap.TotalStacks, snap.PricedStacks, snap.DealsCount, keyRef, steamStatus, pricesStatus, schemaStatus)
	return snap, nil
}

// cachedStacks recovers stacks from the previous snapshot. Their prices are
// dropped and recomputed against the current feed.
func (e *Engine) cachedStacks() []models.ItemStack {
	cached, err := e.cache.ReadSnapshot()
	if err != nil {
		log.Printf("valuation: reading cached snapshot failed: %v", err)
		return nil
	}
	if cached == nil {
		return nil
	}
	stacks := make([]models.ItemStack, 0, len(cached.Items))
	for _, it := range cached.Items {
		st := it.Stack()
		if st.Quantity <= 0 {
			st.Quantity = 1
		}
		stacks = append(stacks, st)
	}
	return stacks
}
