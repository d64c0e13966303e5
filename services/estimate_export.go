package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// Company constants printed on every customer-facing document.
const (
	CompanyName           = "3MG Roofing"
	CompanyAddress        = "1127 Solana Ave"
	CompanyCity           = "Winter Park"
	CompanyState          = "FL"
	CompanyZip            = "32789"
	CompanyPhone          = "407-420-0201"
	CompanyEmail          = "Daniel.Pedraza@3MGRoofing.com"
	CompanyRepresentative = "Daniel Pedraza-T"
	CompanyRepPhone       = "(407) 495-2386"
)

// EstimateExportData holds all data needed to render an estimate document.
type EstimateExportData struct {
	// Company block (fixed constants)
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	Representative string
	RepPhone       string

	// Customer / job
	CustomerName string
	Address      string
	Date         string
	Status       string
	RoofingType  string

	// Pricing
	Tier         PriceTier
	ProfitMargin float64
	MaterialCost CostPair
	LaborCost    CostPair
	Total        float64

	// Measurement snapshot highlights
	TotalSquares     float64
	PredominantPitch string
	Measurements     RoofMeasurements

	Items []LineItem
}

// NewEstimateExportData builds export data from an assembled estimate.
func NewEstimateExportData(est Estimate) *EstimateExportData {
	return &EstimateExportData{
		CompanyName:    CompanyName,
		CompanyAddress: fmt.Sprintf("%s, %s, %s %s", CompanyAddress, CompanyCity, CompanyState, CompanyZip),
		CompanyPhone:   CompanyPhone,
		CompanyEmail:   CompanyEmail,
		Representative: CompanyRepresentative,
		RepPhone:       CompanyRepPhone,

		CustomerName: est.CustomerName,
		Address:      est.Address,
		Date:         est.Date,
		Status:       est.Status,
		RoofingType:  est.RoofingType,

		Tier:         est.Tier,
		ProfitMargin: est.ProfitMargin,
		MaterialCost: est.MaterialCost,
		LaborCost:    est.LaborCost,
		Total:        est.Amount,

		TotalSquares:     est.Measurements.TotalArea / 100,
		PredominantPitch: est.Measurements.PredominantPitch,
		Measurements:     est.Measurements,

		Items: est.Items,
	}
}

// BuildEstimateExportData assembles export data from a persisted estimate and
// its item rows.
func BuildEstimateExportData(app *pocketbase.PocketBase, estimateId string) (*EstimateExportData, error) {
	record, err := app.FindRecordById("estimates", estimateId)
	if err != nil {
		return nil, fmt.Errorf("estimate not found: %w", err)
	}

	var measurements RoofMeasurements
	if err := record.UnmarshalJSONField("measurements", &measurements); err != nil {
		log.Printf("estimate_export: could not decode measurements for %s: %v", estimateId, err)
	}

	var materialCost, laborCost CostPair
	if err := record.UnmarshalJSONField("material_costs", &materialCost); err != nil {
		log.Printf("estimate_export: could not decode material_costs for %s: %v", estimateId, err)
	}
	if err := record.UnmarshalJSONField("labor_costs", &laborCost); err != nil {
		log.Printf("estimate_export: could not decode labor_costs for %s: %v", estimateId, err)
	}

	itemRecords, err := app.FindRecordsByFilter(
		"estimate_items",
		"estimate = {:estimateId}",
		"sort_order",
		0,
		0,
		map[string]any{"estimateId": estimateId},
	)
	if err != nil {
		log.Printf("estimate_export: could not fetch items for estimate %s: %v", estimateId, err)
		itemRecords = nil
	}

	var items []LineItem
	for _, item := range itemRecords {
		items = append(items, LineItem{
			Name:      item.GetString("description"),
			Quantity:  item.GetFloat("quantity"),
			Unit:      item.GetString("unit"),
			UnitPrice: item.GetFloat("unit_price"),
			Total:     item.GetFloat("total"),
			IsLabor:   item.GetBool("is_labor"),
		})
	}

	est := Estimate{
		CustomerName: record.GetString("customer_name"),
		Address:      record.GetString("address"),
		Date:         record.GetString("date"),
		Status:       record.GetString("status"),
		Tier:         PriceTier(record.GetString("selected_price_tier")),
		ProfitMargin: record.GetFloat("profit_margin"),
		RoofingType:  record.GetString("roofing_type"),
		Amount:       record.GetFloat("amount"),
		Measurements: measurements,
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		Items:        items,
	}
	return NewEstimateExportData(est), nil
}
