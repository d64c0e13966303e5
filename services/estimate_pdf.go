package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// estimateTerms is the fixed terms-and-conditions page appended to every
// customer estimate.
var estimateTerms = []string{
	"1. This estimate is valid for 30 days from the date of issue.",
	"2. A 50% deposit is required to schedule the work.",
	"3. Final payment is due upon completion of the work.",
	"4. All work comes with a 5-year workmanship warranty.",
	"5. Material warranties are provided by the manufacturers.",
	"6. Any changes to the scope of work may result in additional charges.",
	"7. 3MG Roofing is not responsible for any existing code violations.",
	"8. Customer is responsible for obtaining necessary permits.",
	"9. Work will be performed during normal business hours.",
	"10. This estimate includes normal wear and tear repairs only.",
}

// GenerateEstimatePDF renders a customer-facing estimate using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateEstimatePDF(data *EstimateExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addEstimateParties(m, data)
	addEstimateItemsTable(m, data)
	addEstimateTotals(m, data)
	addEstimateTermsPage(m)
	addEstimateSignatures(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addEstimateHeader adds the company block on the left and the date plus the
// RETAIL pricing tag on the right.
func addEstimateHeader(m core.Maroto, data *EstimateExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("3MG ROOFING", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(data.Date, props.Text{
					Size:  10,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(
				text.New(data.CompanyAddress, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(4).Add(
				text.New("RETAIL", props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Phone: %s", data.CompanyPhone), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addEstimateParties adds the company representative block and the job block
// side by side.
func addEstimateParties(m core.Maroto, data *EstimateExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  9,
		Align: align.Left,
	}
	boldValue := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("COMPANY REPRESENTATIVE", labelStyle)),
			col.New(6).Add(text.New("JOB", labelStyle)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(data.Representative, boldValue)),
			col.New(6).Add(text.New(data.CustomerName, boldValue)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Phone: %s", data.RepPhone), valueStyle)),
			col.New(6).Add(text.New(data.Address, valueStyle)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(data.CompanyEmail, valueStyle)),
			col.New(6).Add(text.New(data.RoofingType, valueStyle)),
		),
	)

	m.AddRows(row.New(4))
}

// addEstimateItemsTable adds the "3MG Roof Replacement Section" item table.
// maroto handles the page break when the item count exceeds page capacity.
func addEstimateItemsTable(m core.Maroto, data *EstimateExportData) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("3MG Roof Replacement Section", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Material / Labor", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Price", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.Items {
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colName := col.New(6).Add(text.New(item.Name, bodyTextLeft))
		colQty := col.New(2).Add(text.New(FormatQuantity(item.Quantity), bodyText))
		colUnit := col.New(2).Add(text.New(item.Unit, bodyText))
		colPrice := col.New(2).Add(text.New(FormatUSD(item.Total), bodyTextRight))

		if cellStyle != nil {
			colName = colName.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colUnit = colUnit.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
		}

		m.AddRows(row.New(6).Add(colName, colQty, colUnit, colPrice))
	}

	m.AddRows(row.New(2))
}

// addEstimateTotals adds the subtotal rows and the grand total band.
func addEstimateTotals(m core.Maroto, data *EstimateExportData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Materials", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatUSD(data.MaterialCost.WithProfit), valueStyle)).WithStyle(summaryCell),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Labor", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatUSD(data.LaborCost.WithProfit), valueStyle)).WithStyle(summaryCell),
		),
	)

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatUSD(data.Total), grandStyle)).WithStyle(grandCell),
		),
	)
}

// addEstimateTermsPage adds the fixed terms and conditions on a new page.
func addEstimateTermsPage(m core.Maroto) {
	termsPage := page.New()

	termsPage.Add(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Terms and Conditions", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	for _, clause := range estimateTerms {
		termsPage.Add(
			row.New(10).Add(
				col.New(12).Add(text.New(clause, props.Text{
					Size:  9,
					Align: align.Left,
				})),
			),
		)
	}

	m.AddPages(termsPage)
}

// addEstimateSignatures adds the agreement line and signature blocks.
func addEstimateSignatures(m core.Maroto) {
	m.AddRows(row.New(8))

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("By signing below, you agree to the terms and conditions stated above:", props.Text{
					Size:  9,
					Align: align.Left,
				}),
			),
		),
	)

	lineStyle := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(row.New(8))
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Customer Signature", labelStyle)),
			col.New(6).Add(text.New("3MG Roofing Representative", labelStyle)),
		),
	)

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Date", labelStyle)),
			col.New(6).Add(text.New("Date", labelStyle)),
		),
	)
}
