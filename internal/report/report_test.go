package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"tf2-trader/internal/models"
)

func ptr(v float64) *float64 { return &v }

func sample() *models.DashboardSnapshot {
	return &models.DashboardSnapshot{
		SavedAt:            time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		SteamStatus:        "inventory loaded",
		PricesStatus:       "prices loaded (prices.tf) (map=3, skippedComplex=1)",
		SchemaStatus:       "schema loaded",
		KeyRef:             50,
		TotalRef:           278,
		TotalValueKeysPart: 5,
		TotalValueRefPart:  28,
		TotalStacks:        2,
		TotalItems:         3,
		PricedStacks:       1,
		DealsCount:         1,
		Items: []models.EnrichedItem{
			{Defindex: 378, QualityName: "Unique", Quantity: 1, Name: "Team Captain",
				BuyKeys: ptr(2), SellKeys: ptr(3.5), BuyRef: ptr(100), SellRef: ptr(175)},
			{Defindex: 999, QualityName: "Haunted", Quantity: 2, Name: "Item 999"},
		},
		Deals: []models.DealItem{
			{Defindex: 378, Name: "Team Captain", Quantity: 1, BuyKeys: 2, SellKeys: 3.5, SpreadKeys: 1.5},
		},
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatRef(1234.56), "1,234.56 ref"},
		{FormatRef(13.675), "13.68 ref"},
		{FormatRef(0), "0.00 ref"},
		{FormatKeys(3.5), "3.5000 keys"},
		{FormatOptionalRef(nil), "-"},
		{FormatOptionalKeys(ptr(0.02)), "0.0200 keys"},
		{FormatTotal(5, 28), "5 keys + 28.00 ref"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample(), 0)
	for _, want := range []string{
		"# Backpack valuation",
		"| Prices | prices loaded (prices.tf) (map=3, skippedComplex=1) |",
		"| Total value | 5 keys + 28.00 ref |",
		"| Team Captain | 1 | 2.0000 keys | 3.5000 keys | 1.5000 keys |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q in:\n%s", want, md)
		}
	}

	s := sample()
	s.Deals = nil
	if md := Markdown(s, 0); !strings.Contains(md, "No deals.") {
		t.Errorf("Markdown() without deals:\n%s", md)
	}

	s = sample()
	s.Deals = append(s.Deals, models.DealItem{Name: "Other", BuyKeys: 1, SellKeys: 1.1, SpreadKeys: 0.1})
	if md := Markdown(s, 1); !strings.Contains(md, "1 more deals not shown.") || strings.Contains(md, "Other") {
		t.Errorf("Markdown() with topDeals=1:\n%s", md)
	}
}

func TestItemsMarkdown(t *testing.T) {
	items := sample().Items
	items[1].CustomName = "Lucky"
	md := ItemsMarkdown(items)
	for _, want := range []string{
		"| 378 | Team Captain | Unique | 1 | 3.5000 keys | 175.00 ref |",
		"| 999 | Item 999 (\"Lucky\") | Haunted | 2 | - | - |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("ItemsMarkdown() missing %q in:\n%s", want, md)
		}
	}
	if md := ItemsMarkdown(nil); !strings.Contains(md, "No items.") {
		t.Errorf("ItemsMarkdown(nil) = %s", md)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	records := []models.ValuationRecord{{
		SavedAt:            time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		KeyRef:             50,
		TotalRef:           278,
		TotalValueKeysPart: 5,
		TotalValueRefPart:  28,
		TotalStacks:        2,
		DealsCount:         1,
	}}
	md := HistoryMarkdown(records)
	if !strings.Contains(md, "| 5 keys + 28.00 ref | 278.00 ref | 50.00 ref | 2 | 1 |") {
		t.Errorf("HistoryMarkdown() = %s", md)
	}
	if md := HistoryMarkdown(nil); !strings.Contains(md, "No refresh recorded yet.") {
		t.Errorf("HistoryMarkdown(nil) = %s", md)
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(Markdown(sample(), 0))
	if err != nil {
		t.Fatalf("HTML() unexpected error = %v", err)
	}
	if !strings.Contains(string(html), "<table>") || !strings.Contains(string(html), "<h1>Backpack valuation</h1>") {
		t.Errorf("HTML() = %s", html)
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(Markdown(sample(), 0))
	if err != nil {
		t.Fatalf("Terminal() unexpected error = %v", err)
	}
	if !strings.Contains(out, "Deals") {
		t.Errorf("Terminal() output lacks the deals section:\n%s", out)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backpack.xlsx")
	if err := WriteXLSX(sample(), path); err != nil {
		t.Fatalf("WriteXLSX() unexpected error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		sheet, cell, want string
	}{
		{itemsSheet, "A1", "Defindex"},
		{itemsSheet, "B2", "Team Captain"},
		{itemsSheet, "G2", "3.5"},
		{itemsSheet, "B3", "Item 999"},
		{itemsSheet, "G3", ""},
		{dealsSheet, "F2", "1.5"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s) unexpected error = %v", tt.sheet, tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}
}
