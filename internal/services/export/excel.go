// Package export renders the asset list to spreadsheet form
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dvillanueva/cartera/internal/models"
)

const sheetName = "Sheet1"

// assetColumns fixes the column order of the exported workbook. Headers use
// the persisted field names so the export round-trips with the API.
var assetColumns = []string{
	"id", "nombre", "ticker", "tipo", "cantidad",
	"precio_compra", "moneda_compra", "fecha_compra", "isin", "created_at",
}

// WriteAssetsXLSX writes the asset list as an xlsx workbook: one bold
// header row followed by one row per asset.
func WriteAssetsXLSX(assets []*models.Asset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range assetColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for row, asset := range assets {
		values := []interface{}{
			asset.ID,
			asset.Name,
			asset.Ticker,
			asset.Type,
			asset.Quantity,
			asset.PurchasePrice,
			asset.PurchaseCurrency,
			asset.PurchaseDate,
			asset.ISIN,
			asset.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
