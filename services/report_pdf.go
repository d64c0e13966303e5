package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotAPDF flags an upload that is not a readable PDF document.
var ErrNotAPDF = errors.New("file is not a valid PDF")

// ErrNoReportText flags a PDF with no extractable text, typically a
// scanned-image report.
var ErrNoReportText = errors.New("no text could be extracted from the report")

// ReadReport validates an uploaded measurement report and extracts its plain
// text. Returns the text and the page count.
func ReadReport(data []byte) (string, int, error) {
	rs := bytes.NewReader(data)
	conf := model.NewDefaultConfiguration()

	if err := api.Validate(rs, conf); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrNotAPDF, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("rewind report: %w", err)
	}
	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return "", 0, fmt.Errorf("count report pages: %w", err)
	}

	text, err := extractReportText(data)
	if err != nil {
		return "", pages, err
	}
	if strings.TrimSpace(text) == "" {
		return "", pages, ErrNoReportText
	}
	return text, pages, nil
}

func extractReportText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open report: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract report text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("read report text: %w", err)
	}
	return sb.String(), nil
}

// ExtractReportMeasurements is the full upload pipeline: validate the PDF,
// pull its text, run the measurement patterns, and stamp the page count into
// the debug info. Extraction problems are reported through DebugInfo rather
// than failing, so a partial report still yields usable zero-defaulted
// measurements.
func ExtractReportMeasurements(data []byte) (RoofMeasurements, error) {
	text, pages, err := ReadReport(data)
	if err != nil {
		if errors.Is(err, ErrNotAPDF) {
			return RoofMeasurements{}, err
		}
		m := RoofMeasurements{Debug: &DebugInfo{
			ExtractionMethod: "regex",
			PageCount:        pages,
			Error:            err.Error(),
		}}
		m.WastePercentage = DefaultWastePercent
		return m, nil
	}

	m := ExtractMeasurements(text)
	if m.Debug != nil {
		m.Debug.PageCount = pages
	}
	return m, nil
}
