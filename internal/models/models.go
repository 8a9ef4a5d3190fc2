package models

import (
	"fmt"
	"time"
)

// Well-known TF2 item definition indexes.
const (
	KeyDefindex     = 5021 // Mann Co. Supply Crate Key
	RefinedDefindex = 5002 // Refined Metal

	UniqueQuality = 6
)

// Settings holds the user-editable credentials
type Settings struct {
	SteamID64        string `json:"steam_id64"`
	SteamAPIKey      string `json:"steam_api_key"`
	BackpackTFAPIKey string `json:"backpack_tf_api_key"`
}

// ItemStack groups identical inventory items
type ItemStack struct {
	Defindex   int    `json:"defindex"`
	Quality    int    `json:"quality"`
	Quantity   int    `json:"quantity"`
	CustomName string `json:"custom_name,omitempty"`
	CustomDesc string `json:"custom_desc,omitempty"`
}

// StackKey is the identity used to merge stacks.
type StackKey struct {
	Defindex   int
	Quality    int
	CustomName string
	CustomDesc string
}

func (s ItemStack) Key() StackKey {
	return StackKey{Defindex: s.Defindex, Quality: s.Quality, CustomName: s.CustomName, CustomDesc: s.CustomDesc}
}

// Price is a value in keys plus refined metal
type Price struct {
	Keys  float64 `json:"keys"`
	Metal float64 `json:"metal"`
}

// PriceEntry is the Unique craftable tradable price of one item name
type PriceEntry struct {
	Name string `json:"name"`
	Buy  Price  `json:"buy"`
	Sell Price  `json:"sell"`
}

// SchemaItem is static catalog metadata
type SchemaItem struct {
	Defindex    int    `json:"defindex"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

// EnrichedItem is a stack joined with catalog metadata and prices.
// The four price fields are either all set or all nil.
type EnrichedItem struct {
	Defindex    int    `json:"defindex"`
	Quality     int    `json:"quality"`
	QualityName string `json:"quality_name"`
	Quantity    int    `json:"quantity"`
	CustomName  string `json:"custom_name,omitempty"`
	CustomDesc  string `json:"custom_desc,omitempty"`

	Name        string `json:"name"`
	Description string `json:"description"`
	IconPath    string `json:"icon_path,omitempty"`

	BuyKeys  *float64 `json:"buy_keys"`
	SellKeys *float64 `json:"sell_keys"`
	BuyRef   *float64 `json:"buy_ref"`
	SellRef  *float64 `json:"sell_ref"`
}

// Priced reports whether price data was found for the item.
func (e EnrichedItem) Priced() bool {
	return e.SellRef != nil
}

// Stack drops the derived fields and returns the underlying stack.
func (e EnrichedItem) Stack() ItemStack {
	return ItemStack{
		Defindex:   e.Defindex,
		Quality:    e.Quality,
		Quantity:   e.Quantity,
		CustomName: e.CustomName,
		CustomDesc: e.CustomDesc,
	}
}

// DealItem is an item whose buy price is below its sell price
type DealItem struct {
	Defindex   int     `json:"defindex"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	BuyKeys    float64 `json:"buy_keys"`
	SellKeys   float64 `json:"sell_keys"`
	SpreadKeys float64 `json:"spread_keys"`
}

// DashboardSnapshot is the result of one refresh
type DashboardSnapshot struct {
	SavedAt time.Time `json:"saved_at"`

	SteamStatus  string `json:"steam_status"`
	PricesStatus string `json:"prices_status"`
	SchemaStatus string `json:"schema_status"`

	KeyRef             float64 `json:"key_ref"`
	TotalRef           float64 `json:"total_ref"`
	TotalValueKeysPart int     `json:"total_value_keys_part"`
	TotalValueRefPart  float64 `json:"total_value_ref_part"`
	TotalStacks        int     `json:"total_stacks"`
	TotalItems         int     `json:"total_items"`
	PricedStacks       int     `json:"priced_stacks"`
	DealsCount         int     `json:"deals_count"`

	KeysCount    int `json:"keys_count"`
	RefinedCount int `json:"refined_count"`

	SchemaPath  string `json:"schema_path,omitempty"`
	SchemaCount int    `json:"schema_count"`

	Items []EnrichedItem `json:"items"`
	Deals []DealItem     `json:"deals"`
}

// Clone returns a deep copy that shares no slices or price pointers with s.
func (s *DashboardSnapshot) Clone() *DashboardSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Items != nil {
		c.Items = make([]EnrichedItem, len(s.Items))
		for i, it := range s.Items {
			it.BuyKeys = clonePrice(it.BuyKeys)
			it.SellKeys = clonePrice(it.SellKeys)
			it.BuyRef = clonePrice(it.BuyRef)
			it.SellRef = clonePrice(it.SellRef)
			c.Items[i] = it
		}
	}
	if s.Deals != nil {
		c.Deals = append([]DealItem(nil), s.Deals...)
	}
	return &c
}

func clonePrice(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

var qualityNames = map[int]string{
	0:  "Normal",
	1:  "Genuine",
	2:  "Vintage",
	3:  "Unusual",
	5:  "Community",
	6:  "Unique",
	7:  "Valve",
	8:  "Self-Made",
	9:  "Customized",
	10: "Strange",
	11: "Haunted",
	12: "Collector's",
}

// QualityName returns the display name of a quality tier.
func QualityName(q int) string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("Quality %d", q)
}
