package valuation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"tf2-trader/internal/models"
	"tf2-trader/internal/services/schema"
)

const (
	refPlaces  = 2
	keysPlaces = 4
)

// Enrich joins a stack with its schema entry and price. Items missing from
// the schema get a synthetic name; items missing from the price map keep
// all price fields nil.
func Enrich(stack models.ItemStack, index *schema.Index, priceMap map[int]models.PriceEntry, keyRef float64, iconPath func(int) string) models.EnrichedItem {
	item := models.EnrichedItem{
		Defindex:    stack.Defindex,
		Quality:     stack.Quality,
		QualityName: models.QualityName(stack.Quality),
		Quantity:    stack.Quantity,
		CustomName:  stack.CustomName,
		CustomDesc:  stack.CustomDesc,
		Name:        schema.FallbackName(stack.Defindex),
	}
	if index != nil {
		if si, ok := index.Map[stack.Defindex]; ok {
			item.Name = si.Name
			item.Description = si.Description
		}
	}
	if iconPath != nil {
		item.IconPath = iconPath(stack.Defindex)
	}

	p, ok := priceMap[stack.Defindex]
	if !ok {
		return item
	}
	buyRef := ToRef(p.Buy.Keys, p.Buy.Metal, keyRef)
	sellRef := ToRef(p.Sell.Keys, p.Sell.Metal, keyRef)
	if buyRef == nil || sellRef == nil {
		return item
	}
	buyKeys := ToKeys(*buyRef, keyRef)
	sellKeys := ToKeys(*sellRef, keyRef)

	item.BuyRef = roundPtr(buyRef, refPlaces)
	item.SellRef = roundPtr(sellRef, refPlaces)
	item.BuyKeys = roundPtr(&buyKeys, keysPlaces)
	item.SellKeys = roundPtr(&sellKeys, keysPlaces)
	return item
}

// FindDeals lists items that sell for more keys than they buy for, largest
// spread first.
func FindDeals(items []models.EnrichedItem) []models.DealItem {
	deals := []models.DealItem{}
	for _, it := range items {
		if it.BuyKeys == nil || it.SellKeys == nil {
			continue
		}
		buy, sell := *it.BuyKeys, *it.SellKeys
		if buy <= 0 || sell <= buy {
			continue
		}
		deals = append(deals, models.DealItem{
			Defindex:   it.Defindex,
			Name:       it.Name,
			Quantity:   it.Quantity,
			BuyKeys:    buy,
			SellKeys:   sell,
			SpreadKeys: Round(sell-buy, keysPlaces),
		})
	}
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].SpreadKeys > deals[j].SpreadKeys
	})
	return deals
}

// Totals are the portfolio aggregates of a snapshot.
type Totals struct {
	Stacks       int
	Items        int
	PricedStacks int
	KeysCount    int
	RefinedCount int
	TotalRef     float64
	KeysPart     int
	RefPart      float64
}

// Summarize counts the inventory and values it at sell prices.
func Summarize(items []models.EnrichedItem, keyRef float64) Totals {
	t := Totals{Stacks: len(items)}
	total := decimal.Zero
	for _, it := range items {
		t.Items += it.Quantity
		switch it.Defindex {
		case models.KeyDefindex:
			t.KeysCount += it.Quantity
		case models.RefinedDefindex:
			t.RefinedCount += it.Quantity
		}
		if it.SellRef == nil {
			continue
		}
		t.PricedStacks++
		total = total.Add(decimal.NewFromFloat(*it.SellRef).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	totalRef := total.InexactFloat64()
	if !finite(totalRef) {
		totalRef = math.MaxFloat64
	}
	t.TotalRef = Round(totalRef, refPlaces)
	keysPart, refPart := SplitKeysRef(totalRef, keyRef)
	t.KeysPart = keysPart
	t.RefPart = Round(refPart, refPlaces)
	return t
}
