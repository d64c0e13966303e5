package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// estimateInput is the request body shared by the preview, preview-PDF and
// save endpoints. The customer block is ignored by the plain preview.
// WastePercent is a pointer so an explicit 0 is distinguishable from an
// omitted field.
type estimateInput struct {
	Customer     services.CustomerInfo     `json:"customer"`
	Measurements services.RoofMeasurements `json:"measurements"`
	Selections   services.Selections       `json:"selections"`
	Tier         services.PriceTier        `json:"tier"`
	CustomMargin float64                   `json:"custom_margin"`
	WastePercent *float64                  `json:"waste_percent"`
}

// options resolves the waste percentage: the explicit request value wins,
// then the report's suggested waste, then the default.
func (in estimateInput) options() services.EstimateOptions {
	waste := services.DefaultWastePercent
	if in.WastePercent != nil {
		waste = *in.WastePercent
	} else if in.Measurements.WastePercentage > 0 {
		waste = in.Measurements.WastePercentage
	}
	return services.EstimateOptions{
		Tier:         in.Tier,
		CustomMargin: in.CustomMargin,
		WastePercent: waste,
	}
}

// HandleEstimatePreview returns a handler that computes a full estimate
// breakdown from measurements and selections without persisting anything.
func HandleEstimatePreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in estimateInput
		if err := e.BindBody(&in); err != nil {
			log.Printf("estimate_preview: could not parse body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		breakdown := services.ComputeEstimate(in.Measurements, in.Selections, catalogOrDefault(app), in.options())
		return e.JSON(http.StatusOK, breakdown)
	}
}

// HandleEstimatePreviewPDF returns a handler that generates the customer
// estimate PDF straight from the request payload, without saving a record.
func HandleEstimatePreviewPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in estimateInput
		if err := e.BindBody(&in); err != nil {
			log.Printf("estimate_preview: could not parse body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		breakdown := services.ComputeEstimate(in.Measurements, in.Selections, catalogOrDefault(app), in.options())

		est, err := services.AssembleEstimate(in.Customer, in.Measurements, breakdown, in.Tier)
		if err != nil {
			return e.String(http.StatusBadRequest, validationMessage(err))
		}

		pdfBytes, err := services.GenerateEstimatePDF(services.NewEstimateExportData(est))
		if err != nil {
			log.Printf("estimate_preview: failed to generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("estimate-%s.pdf", sanitizeFilename(est.CustomerName))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
