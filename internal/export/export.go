// Package export renders inventory views as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/query"
)

// ContentType is the MIME type of the XLSX output.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the worksheet holding the items.
const SheetName = "Inventory"

// Headers are the column headings of the item sheet.
var Headers = []string{
	"ลำดับ",
	"หมวดหมู่",
	"ชื่อสิ่งของ",
	"จำนวนคงเหลือ",
	"หน่วย",
	"สถานะ",
	"สถานที่จัดเก็บ",
	"อัปเดตล่าสุด",
	"ตรวจโดย",
}

var colWidths = []float64{8, 22, 40, 14, 10, 12, 28, 20, 24}

// Workbook builds a workbook with one row per item, in the given order,
// followed by a summary row. The caller closes the file.
func Workbook(items []model.Item, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
		f.SetCellStyle(SheetName, cell, cell, header)
	}

	for i, item := range items {
		row := i + 2
		updated := ""
		if item.LastUpdated != nil {
			updated = item.LastUpdated.In(loc).Format("2006-01-02 15:04")
		}
		values := []any{
			item.ID,
			item.Category,
			item.Name,
			item.Qty,
			item.Unit,
			string(item.Status),
			item.Location,
			updated,
			strings.Join(item.CheckedBy, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", row, err)
		}
	}

	sum := query.Summarize(items)
	summaryRow := len(items) + 2
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellValue(SheetName, fmt.Sprintf("A%d", summaryRow), "รวม")
	f.SetCellValue(SheetName, fmt.Sprintf("C%d", summaryRow),
		fmt.Sprintf("%d รายการ (%s %d, %s %d, %s %d)", sum.Total,
			model.StatusNormal, sum.Normal, model.StatusLow, sum.Low, model.StatusEmpty, sum.Empty))
	f.SetCellStyle(SheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), bold)

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(SheetName, col, col, w)
	}
	f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return f, nil
}

// WriteXLSX writes the workbook for items to w.
func WriteXLSX(w io.Writer, items []model.Item, loc *time.Location) error {
	f, err := Workbook(items, loc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Filename returns the download name for an export made at t.
func Filename(t time.Time) string {
	return "inventory_" + t.Format("20060102_1504") + ".xlsx"
}
