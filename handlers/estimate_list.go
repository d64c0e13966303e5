package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// estimateJSON projects an estimates record into the list/detail response
// shape. Nested JSON fields are added by the detail handler only.
func estimateJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":                  r.Id,
		"customer_name":       r.GetString("customer_name"),
		"address":             r.GetString("address"),
		"date":                r.GetString("date"),
		"status":              r.GetString("status"),
		"selected_price_tier": r.GetString("selected_price_tier"),
		"profit_margin":       r.GetFloat("profit_margin"),
		"roofing_type":        r.GetString("roofing_type"),
		"amount":              r.GetFloat("amount"),
	}
}

// HandleEstimateList returns a handler that lists saved estimates,
// newest first.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("estimates", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("estimate_list: could not list estimates: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list estimates")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, estimateJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleEstimateDetail returns a handler that serves one estimate with its
// measurement snapshot, cost pairs and ordered line items.
func HandleEstimateDetail(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		out := estimateJSON(record)

		var measurements services.RoofMeasurements
		if err := record.UnmarshalJSONField("measurements", &measurements); err != nil {
			log.Printf("estimate_list: could not decode measurements for %s: %v", id, err)
		}
		out["measurements"] = measurements

		var materialCost, laborCost services.CostPair
		if err := record.UnmarshalJSONField("material_costs", &materialCost); err != nil {
			log.Printf("estimate_list: could not decode material_costs for %s: %v", id, err)
		}
		if err := record.UnmarshalJSONField("labor_costs", &laborCost); err != nil {
			log.Printf("estimate_list: could not decode labor_costs for %s: %v", id, err)
		}
		out["material_costs"] = materialCost
		out["labor_costs"] = laborCost

		itemRecords, err := app.FindRecordsByFilter("estimate_items", "estimate = {:estimateId}", "sort_order", 0, 0, map[string]any{"estimateId": id})
		if err != nil {
			itemRecords = nil
		}

		items := make([]services.LineItem, 0, len(itemRecords))
		for _, ir := range itemRecords {
			items = append(items, services.LineItem{
				Name:      ir.GetString("description"),
				Quantity:  ir.GetFloat("quantity"),
				Unit:      ir.GetString("unit"),
				UnitPrice: ir.GetFloat("unit_price"),
				Total:     ir.GetFloat("total"),
				IsLabor:   ir.GetBool("is_labor"),
			})
		}
		out["items"] = items

		return e.JSON(http.StatusOK, out)
	}
}
