package export

import (
	"fmt"

	"lavka/internal/models"

	"github.com/xuri/excelize/v2"
)

const itemsSheet = "Items"

// BuildItemsWorkbook renders the full catalog, deleted rows included, into
// a single-sheet workbook. The caller owns closing the file.
func BuildItemsWorkbook(items []models.Item) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(itemsSheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Name", "Price", "Deleted"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, h)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(itemsSheet, "A1", "D1", style)

	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), item.ID)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.Name)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.Price)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), item.Deleted)
	}

	_ = f.SetColWidth(itemsSheet, "A", "A", 8)
	_ = f.SetColWidth(itemsSheet, "B", "B", 30)
	_ = f.SetColWidth(itemsSheet, "C", "D", 12)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	return f, nil
}
