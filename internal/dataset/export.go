package dataset

import (
	"fmt"
	"io"

	"netzero-nexus/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteXLSX writes records as a workbook with the canonical header row.
func WriteXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(models.RequiredColumns))
	for i, col := range models.RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Location,
			r.Scenario,
			r.Initiative,
			r.CostSaving,
			r.GHGMitigated,
			r.MIRR,
			r.Alignment,
			r.Customization,
			r.Sellable,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}
