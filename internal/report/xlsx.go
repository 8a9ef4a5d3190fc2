package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tf2-trader/internal/models"
)

const (
	itemsSheet = "Items"
	dealsSheet = "Deals"
)

// WriteXLSX exports the items and deals of a snapshot to path.
func WriteXLSX(s *models.DashboardSnapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return err
	}
	header := []interface{}{"Defindex", "Name", "Quality", "Quantity", "Custom name", "Buy (keys)", "Sell (keys)", "Buy (ref)", "Sell (ref)"}
	if err := f.SetSheetRow(itemsSheet, "A1", &header); err != nil {
		return err
	}
	for i, it := range s.Items {
		row := []interface{}{it.Defindex, it.Name, it.QualityName, it.Quantity, it.CustomName,
			cell(it.BuyKeys), cell(it.SellKeys), cell(it.BuyRef), cell(it.SellRef)}
		if err := f.SetSheetRow(itemsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(dealsSheet); err != nil {
		return err
	}
	header = []interface{}{"Defindex", "Name", "Quantity", "Buy (keys)", "Sell (keys)", "Spread (keys)"}
	if err := f.SetSheetRow(dealsSheet, "A1", &header); err != nil {
		return err
	}
	for i, d := range s.Deals {
		row := []interface{}{d.Defindex, d.Name, d.Quantity, d.BuyKeys, d.SellKeys, d.SpreadKeys}
		if err := f.SetSheetRow(dealsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// cell leaves unpriced values blank.
func cell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
