package steam

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"tf2-trader/internal/models"
	"tf2-trader/internal/services/transport"
	"tf2-trader/internal/tolerant"
)

const (
	StatusLoaded       = "inventory loaded"
	StatusMissingID    = "SteamID64 missing (using cache if available)"
	StatusMissingKey   = "Steam API key missing (using cache if available)"
	StatusRequestError = "Steam request failed (using cache if available)"
	StatusMalformed    = "Steam response malformed (using cache if available)"
	StatusNoResult     = "Steam response missing result (using cache if available)"
	StatusNoItems      = "Steam response missing items (using cache if available)"
)

// SteamService reads a TF2 backpack through IEconItems_440/GetPlayerItems.
type SteamService struct {
	http         transport.Getter
	inventoryURL string
}

func NewSteamService(http transport.Getter, inventoryURL string) *SteamService {
	return &SteamService{
		http:         http,
		inventoryURL: inventoryURL,
	}
}

// FetchAndParse downloads the inventory of steamID64 and merges it into
// stacks. Every failure is reported through the status text with an empty
// result; err is non-nil only when ctx is done.
func (s *SteamService) FetchAndParse(ctx context.Context, apiKey, steamID64 string) ([]models.ItemStack, string, error) {
	apiKey = strings.TrimSpace(apiKey)
	steamID64 = strings.TrimSpace(steamID64)

	if steamID64 == "" {
		return nil, StatusMissingID, nil
	}
	if apiKey == "" {
		return nil, StatusMissingKey, nil
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("steamid", steamID64)

	status, body, err := s.http.Get(ctx, s.inventoryURL+"?"+params.Encode())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		log.Printf("steam: inventory request failed: %v", err)
		return nil, StatusRequestError, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Sprintf("Steam HTTP %d (using cache if available)", status), nil
	}

	stacks, msg := ParseInventory(body)
	return stacks, msg, nil
}

// ParseInventory validates a GetPlayerItems payload and normalizes its items.
func ParseInventory(body []byte) ([]models.ItemStack, string) {
	doc, err := tolerant.Decode(body)
	if err != nil {
		log.Printf("steam: inventory payload is not valid JSON: %v", err)
		return nil, StatusMalformed
	}

	result, ok := tolerant.Field(doc, "result")
	if _, isObj := result.(map[string]any); !ok || !isObj {
		return nil, StatusNoResult
	}

	if raw, ok := tolerant.Field(result, "status"); ok {
		if st, isNum := tolerant.Float(raw); isNum && st != 1 {
			return nil, fmt.Sprintf("Steam API status %g (using cache if available)", st)
		}
	}

	items, ok := tolerant.Field(result, "items")
	records, isList := items.([]any)
	if !ok || !isList {
		return nil, StatusNoItems
	}

	return Normalize(records), StatusLoaded
}

// Normalize turns raw item records into stacks. Records without a usable
// defindex are dropped; identical (defindex, quality, custom name, custom
// description) records are merged by summing their quantities.
func Normalize(records []any) []models.ItemStack {
	merged := make(map[models.StackKey]*models.ItemStack)

	for _, rec := range records {
		if _, ok := rec.(map[string]any); !ok {
			continue
		}
		defindex, ok := tolerant.IntField(rec, "defindex")
		if !ok || defindex < 0 {
			continue
		}
		quality, ok := tolerant.IntField(rec, "quality")
		if !ok {
			quality = models.UniqueQuality
		}
		quantity, ok := tolerant.IntField(rec, "quantity")
		if !ok || quantity <= 0 {
			quantity = 1
		}
		customName, _ := tolerant.StringField(rec, "custom_name")
		customDesc, _ := tolerant.StringField(rec, "custom_desc")

		stack := models.ItemStack{
			Defindex:   defindex,
			Quality:    quality,
			Quantity:   quantity,
			CustomName: customName,
			CustomDesc: customDesc,
		}
		if prev, exists := merged[stack.Key()]; exists {
			prev.Quantity += quantity
			continue
		}
		merged[stack.Key()] = &stack
	}

	stacks := make([]models.ItemStack, 0, len(merged))
	for _, st := range merged {
		stacks = append(stacks, *st)
	}
	SortStacks(stacks)
	return stacks
}

// SortStacks orders stacks by defindex, quality, then custom text.
func SortStacks(stacks []models.ItemStack) {
	sort.Slice(stacks, func(i, j int) bool {
		a, b := stacks[i], stacks[j]
		if a.Defindex != b.Defindex {
			return a.Defindex < b.Defindex
		}
		if a.Quality != b.Quality {
			return a.Quality < b.Quality
		}
		if a.CustomName != b.CustomName {
			return a.CustomName < b.CustomName
		}
		return a.CustomDesc < b.CustomDesc
	})
}
