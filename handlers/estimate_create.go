package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// validationMessage maps the assembly sentinel errors to user-facing text.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingCustomerName):
		return "Customer name is required"
	case errors.Is(err, services.ErrMissingAddress):
		return "Customer address is required"
	case errors.Is(err, services.ErrNoTierSelected):
		return "A pricing tier must be selected"
	}
	return "Invalid estimate"
}

// HandleEstimateCreate returns a handler that computes, validates and saves
// an estimate with its line items. The record and all items are written in a
// single transaction, so a failed item write leaves no orphaned estimate.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in estimateInput
		if err := e.BindBody(&in); err != nil {
			log.Printf("estimate_create: could not parse body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		breakdown := services.ComputeEstimate(in.Measurements, in.Selections, catalogOrDefault(app), in.options())

		est, err := services.AssembleEstimate(in.Customer, in.Measurements, breakdown, in.Tier)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, validationMessage(err))
		}

		var saved *core.Record
		err = app.RunInTransaction(func(txApp core.App) error {
			estimatesCol, err := txApp.FindCollectionByNameOrId("estimates")
			if err != nil {
				return fmt.Errorf("estimates collection not found: %w", err)
			}
			itemsCol, err := txApp.FindCollectionByNameOrId("estimate_items")
			if err != nil {
				return fmt.Errorf("estimate_items collection not found: %w", err)
			}

			record := core.NewRecord(estimatesCol)
			record.Set("customer_name", est.CustomerName)
			record.Set("address", est.Address)
			record.Set("date", est.Date)
			record.Set("status", est.Status)
			record.Set("selected_price_tier", string(est.Tier))
			record.Set("profit_margin", est.ProfitMargin)
			record.Set("roofing_type", est.RoofingType)
			record.Set("amount", est.Amount)
			record.Set("measurements", est.Measurements)
			record.Set("material_costs", est.MaterialCost)
			record.Set("labor_costs", est.LaborCost)

			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("could not save estimate: %w", err)
			}

			for i, item := range est.Items {
				itemRecord := core.NewRecord(itemsCol)
				itemRecord.Set("estimate", record.Id)
				itemRecord.Set("sort_order", i+1)
				itemRecord.Set("description", item.Name)
				itemRecord.Set("quantity", item.Quantity)
				itemRecord.Set("unit", item.Unit)
				itemRecord.Set("unit_price", item.UnitPrice)
				itemRecord.Set("total", item.Total)
				itemRecord.Set("is_labor", item.IsLabor)

				if err := txApp.Save(itemRecord); err != nil {
					return fmt.Errorf("could not save item %d: %w", i+1, err)
				}
			}

			saved = record
			return nil
		})
		if err != nil {
			log.Printf("estimate_create: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save estimate")
		}

		out := estimateJSON(saved)
		out["items"] = est.Items

		SetToast(e, "success", fmt.Sprintf("Estimate for %s saved", est.CustomerName))
		return e.JSON(http.StatusCreated, out)
	}
}
