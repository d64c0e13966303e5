package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// maxReportSize caps uploaded measurement reports at 20 MB.
const maxReportSize = 20 << 20

// HandleReportUpload returns a handler that accepts an uploaded measurement
// report PDF and responds with the extracted roof measurements as JSON.
func HandleReportUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxReportSize); err != nil {
			log.Printf("report_upload: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Missing report file")
		}
		defer file.Close()

		if header != nil && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			return e.String(http.StatusBadRequest, "Report must be a PDF file")
		}

		data, err := io.ReadAll(io.LimitReader(file, maxReportSize))
		if err != nil {
			log.Printf("report_upload: could not read %q: %v", header.Filename, err)
			return e.String(http.StatusBadRequest, "Could not read report file")
		}

		measurements, err := services.ExtractReportMeasurements(data)
		if err != nil {
			if errors.Is(err, services.ErrNotAPDF) {
				return e.String(http.StatusBadRequest, "File is not a valid PDF")
			}
			log.Printf("report_upload: extraction failed for %q: %v", header.Filename, err)
			return e.String(http.StatusInternalServerError, "Failed to process report")
		}

		return e.JSON(http.StatusOK, measurements)
	}
}
