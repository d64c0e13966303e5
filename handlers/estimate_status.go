package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// statusTransitions lists the allowed next statuses per current status.
// Sent is terminal.
var statusTransitions = map[string][]string{
	services.StatusPending:  {services.StatusApproved, services.StatusSent},
	services.StatusApproved: {services.StatusSent},
}

// HandleEstimateStatusUpdate returns a handler that moves an estimate through
// the pending -> approved -> sent lifecycle.
func HandleEstimateStatusUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		current := record.GetString("status")
		if !slices.Contains(statusTransitions[current], body.Status) {
			return ErrorToast(e, http.StatusUnprocessableEntity,
				"Cannot change status from "+current+" to "+body.Status)
		}

		record.Set("status", body.Status)
		if err := app.Save(record); err != nil {
			log.Printf("estimate_status: could not update %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to update status")
		}

		SetToast(e, "success", "Estimate marked "+body.Status)
		return e.JSON(http.StatusOK, estimateJSON(record))
	}
}
