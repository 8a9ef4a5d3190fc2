// Package report renders dashboard snapshots for terminals, browsers and
// spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"tf2-trader/internal/models"
)

// Markdown summarizes a snapshot. topDeals limits the deals table; 0 shows all.
func Markdown(s *models.DashboardSnapshot, topDeals int) string {
	var b strings.Builder

	b.WriteString("# Backpack valuation\n\n")
	fmt.Fprintf(&b, "Saved at %s\n\n", s.SavedAt.Local().Format("2006-01-02 15:04:05"))

	b.WriteString("| Source | Status |\n|---|---|\n")
	fmt.Fprintf(&b, "| Steam | %s |\n", escape(s.SteamStatus))
	fmt.Fprintf(&b, "| Prices | %s |\n", escape(s.PricesStatus))
	fmt.Fprintf(&b, "| Schema | %s |\n\n", escape(s.SchemaStatus))

	b.WriteString("## Totals\n\n")
	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total value | %s |\n", FormatTotal(s.TotalValueKeysPart, s.TotalValueRefPart))
	fmt.Fprintf(&b, "| Total in refined | %s |\n", FormatRef(s.TotalRef))
	fmt.Fprintf(&b, "| Key price | %s |\n", FormatRef(s.KeyRef))
	fmt.Fprintf(&b, "| Stacks | %d (%d priced) |\n", s.TotalStacks, s.PricedStacks)
	fmt.Fprintf(&b, "| Items | %d |\n", s.TotalItems)
	fmt.Fprintf(&b, "| Keys | %d |\n", s.KeysCount)
	fmt.Fprintf(&b, "| Refined | %d |\n\n", s.RefinedCount)

	b.WriteString("## Deals\n\n")
	if len(s.Deals) == 0 {
		b.WriteString("No deals.\n")
		return b.String()
	}
	b.WriteString("| Item | Qty | Buy | Sell | Spread |\n|---|---:|---:|---:|---:|\n")
	for i, d := range s.Deals {
		if topDeals > 0 && i >= topDeals {
			fmt.Fprintf(&b, "\n%d more deals not shown.\n", len(s.Deals)-topDeals)
			break
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			escape(d.Name), d.Quantity, FormatKeys(d.BuyKeys), FormatKeys(d.SellKeys), FormatKeys(d.SpreadKeys))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Terminal renders markdown with ANSI styling.
func Terminal(md string) (string, error) {
	return glamour.Render(md, "dark")
}

// HTML renders markdown, tables included, to an HTML fragment.
func HTML(md string) ([]byte, error) {
	var buf bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ItemsMarkdown lists every stack with its sell price.
func ItemsMarkdown(items []models.EnrichedItem) string {
	var b strings.Builder
	b.WriteString("## Items\n\n")
	if len(items) == 0 {
		b.WriteString("No items.\n")
		return b.String()
	}
	b.WriteString("| Defindex | Item | Quality | Qty | Sell (keys) | Sell (ref) |\n|---:|---|---|---:|---:|---:|\n")
	for _, it := range items {
		name := it.Name
		if it.CustomName != "" {
			name = fmt.Sprintf("%s (%q)", it.Name, it.CustomName)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s |\n",
			it.Defindex, escape(name), it.QualityName, it.Quantity, FormatOptionalKeys(it.SellKeys), FormatOptionalRef(it.SellRef))
	}
	return b.String()
}

// HistoryMarkdown tabulates recorded refreshes, newest first.
func HistoryMarkdown(records []models.ValuationRecord) string {
	var b strings.Builder
	b.WriteString("# Valuation history\n\n")
	if len(records) == 0 {
		b.WriteString("No refresh recorded yet.\n")
		return b.String()
	}
	b.WriteString("| Saved at | Total | In refined | Key price | Stacks | Deals |\n|---|---:|---:|---:|---:|---:|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %d |\n",
			r.SavedAt.Local().Format("2006-01-02 15:04"), FormatTotal(r.TotalValueKeysPart, r.TotalValueRefPart),
			FormatRef(r.TotalRef), FormatRef(r.KeyRef), r.TotalStacks, r.DealsCount)
	}
	return b.String()
}
