package prices

import (
	"log"
	"math"
	"sort"

	"tf2-trader/internal/models"
	"tf2-trader/internal/tolerant"
)

var (
	itemsCandidates = tolerant.MustCompile("$.items", "$.response.items")

	// Unique quality, tradable, craftable.
	uniqueCraftable = tolerant.MustCompile(`$.prices["6"].Tradable.Craftable`)
)

// Parse builds the defindex -> price map from a raw IGetPrices v4 payload.
// Entries whose Unique block is keyed by variant (an object instead of a
// list) are not parsed; they are counted in skippedComplex.
func Parse(raw []byte) (priceMap map[int]models.PriceEntry, skippedComplex int) {
	priceMap = make(map[int]models.PriceEntry)

	doc, err := tolerant.Decode(raw)
	if err != nil {
		log.Printf("prices: payload is not valid JSON: %v", err)
		return priceMap, 0
	}
	items, ok := itemsCandidates.Object(doc)
	if !ok {
		return priceMap, 0
	}

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		item, ok := items[name].(map[string]any)
		if !ok {
			continue
		}
		defindexes, ok := item["defindex"].([]any)
		if !ok {
			continue
		}
		if _, ok := item["prices"].(map[string]any); !ok {
			continue
		}
		block, ok := uniqueCraftable.First(item)
		if !ok {
			continue
		}
		list, isList := block.([]any)
		if !isList {
			skippedComplex++
			continue
		}
		if len(list) == 0 {
			continue
		}
		entry, ok := list[0].(map[string]any)
		if !ok {
			continue
		}

		buy, okBuy := readPrice(entry, "buy")
		sell, okSell := readPrice(entry, "sell")
		if !okBuy || !okSell {
			continue
		}

		for _, d := range defindexes {
			defindex, ok := tolerant.Int(d)
			if !ok || defindex < 0 {
				continue
			}
			priceMap[defindex] = models.PriceEntry{Name: name, Buy: buy, Sell: sell}
		}
	}

	return priceMap, skippedComplex
}

func readPrice(entry map[string]any, side string) (models.Price, bool) {
	obj, ok := entry[side].(map[string]any)
	if !ok {
		return models.Price{}, false
	}
	return models.Price{
		Keys:  component(obj["keys"]),
		Metal: component(obj["metal"]),
	}, true
}

// component reads a keys/metal amount; anything unusable counts as zero.
func component(v any) float64 {
	f, ok := tolerant.Float(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// DefaultKeyRef is the refined-per-key rate used when the feed has no key price.
const DefaultKeyRef = 60.0

// ResolveKeyRef returns how much refined metal one key is worth.
func ResolveKeyRef(priceMap map[int]models.PriceEntry, fallback float64) float64 {
	key, ok := priceMap[models.KeyDefindex]
	if !ok {
		return fallback
	}
	k, m := key.Sell.Keys, key.Sell.Metal
	rate := fallback
	switch {
	case m > 0 && math.Abs(k) < 0.000001:
		rate = m
	case k > 0:
		rate = k*fallback + m
	}
	if math.IsInf(rate, 0) || math.IsNaN(rate) || rate <= 0 {
		return fallback
	}
	return rate
}
