package leads

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/ptr"
)

const exportSheet = "Leads"

var exportHeader = []interface{}{
	"ID", "Prospect Name", "Email", "Phone", "Source", "Integration Source",
	"Property", "Move-in Date", "Promotion", "Status", "Converted", "Created At",
}

// buildWorkbook собирает XLSX с заголовком и строкой на каждого лида
func buildWorkbook(leads []*domain.Lead) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", style)
	_ = f.SetColWidth(exportSheet, "A", "A", 8)
	_ = f.SetColWidth(exportSheet, "B", lastCol, 22)

	for i, l := range leads {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			l.ID,
			l.ProspectName,
			ptr.Deref(l.Email, ""),
			ptr.Deref(l.Phone, ""),
			l.Source,
			ptr.Deref(l.IntegrationSource, ""),
			ptr.Deref(l.PropertyName, ""),
			ptr.Deref(l.MoveInDate, ""),
			ptr.Deref(l.Promotion, ""),
			string(l.Status),
			l.IsConverted,
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
