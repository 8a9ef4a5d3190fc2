package models

import "time"

// ValuationRecord stores one row per refresh so the portfolio value
// can be charted over time.
type ValuationRecord struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	SavedAt time.Time `json:"saved_at" gorm:"index;not null"`

	// Exchange rate used for this refresh, in refined per key
	KeyRef             float64   `json:"key_ref"`
	TotalRef           float64   `json:"total_ref"`
	TotalValueKeysPart int       `json:"total_value_keys_part"`
	TotalValueRefPart  float64   `json:"total_value_ref_part"`
	TotalStacks        int       `json:"total_stacks"`
	TotalItems         int       `json:"total_items"`
	PricedStacks       int       `json:"priced_stacks"`
	DealsCount         int       `json:"deals_count"`
	KeysCount          int       `json:"keys_count"`
	RefinedCount       int       `json:"refined_count"`
	SteamStatus        string    `json:"steam_status"`
	PricesStatus       string    `json:"prices_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewValuationRecord summarizes a snapshot.
func NewValuationRecord(s *DashboardSnapshot) ValuationRecord {
	return ValuationRecord{
		SavedAt:            s.SavedAt,
		KeyRef:             s.KeyRef,
		TotalRef:           s.TotalRef,
		TotalValueKeysPart: s.TotalValueKeysPart,
		TotalValueRefPart:  s.TotalValueRefPart,
		TotalStacks:        s.TotalStacks,
		TotalItems:         s.TotalItems,
		PricedStacks:       s.PricedStacks,
		DealsCount:         s.DealsCount,
		KeysCount:          s.KeysCount,
		RefinedCount:       s.RefinedCount,
		SteamStatus:        s.SteamStatus,
		PricesStatus:       s.PricesStatus,
	}
}
