package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleEstimateDelete returns a handler that removes an estimate. Line items
// are removed by the cascade on the estimate relation.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("estimate_delete: could not delete %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete estimate")
		}

		SetToast(e, "success", "Estimate deleted")
		return e.NoContent(http.StatusNoContent)
	}
}
