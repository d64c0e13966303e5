package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an Excel workbook for an estimate and returns
// the file contents as a byte slice. One sheet: measurement summary up top,
// itemized materials and labor below, totals at the bottom.
func GenerateEstimateExcel(data *EstimateExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Estimate"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through E).
	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1] // "E"

	widths := []float64{42, 12, 16, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: estimateThinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: estimateThinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Roofing Estimate", data.CompanyName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	f.SetCellValue(sheetName, "A2", "Customer: "+sanitizeEstimateCell(data.CustomerName))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	f.SetCellValue(sheetName, "A3", "Address: "+sanitizeEstimateCell(data.Address))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)
	f.SetCellValue(sheetName, "A4", "Date: "+data.Date)
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Measurement summary (rows 6-9) ──────────────────────────────────

	summary := []struct {
		label string
		value string
	}{
		{"Roofing Type", data.RoofingType},
		{"Total Squares", fmt.Sprintf("%.2f SQ", data.TotalSquares)},
		{"Predominant Pitch", data.PredominantPitch},
		{"Pricing Tier", string(data.Tier)},
	}

	row := 6
	for _, s := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, s.label)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeEstimateCell(s.value))
		row++
	}
	row++

	// ── Column Headers ──────────────────────────────────────────────────

	headers := []string{"Description", "Qty", "Unit", "Unit Price", "Total"}
	headerRow := fmt.Sprintf("%d", row)
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	// ── Item Rows ───────────────────────────────────────────────────────

	for _, item := range data.Items {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeEstimateCell(item.Name))
		f.SetCellValue(sheetName, "B"+rowStr, item.Quantity)
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeEstimateCell(item.Unit))
		f.SetCellValue(sheetName, "D"+rowStr, FormatUSD(item.UnitPrice))
		f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(item.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	summaryRows := []struct {
		label string
		value float64
	}{
		{"Materials:", data.MaterialCost.WithProfit},
		{"Labor:", data.LaborCost.WithProfit},
		{"Total:", data.Total},
	}
	for _, s := range summaryRows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, s.label)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(s.value))
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeEstimateCell prevents formula injection by prefixing dangerous
// leading characters with a single quote.
func sanitizeEstimateCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// estimateThinBorders returns thin borders on all four sides.
func estimateThinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
