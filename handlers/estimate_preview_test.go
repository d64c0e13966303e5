package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roofestimate/testhelpers"
)

func TestHandleEstimatePreview(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimatePreview(app)

	in := validEstimateInput()
	req := httptest.NewRequest(http.MethodPost, "/api/estimates/preview", createEstimateBody(t, in))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Squares struct {
			BaseSquares  int `json:"base_squares"`
			TotalSquares int `json:"total_squares"`
		} `json:"squares"`
		Items        []json.RawMessage `json:"items"`
		ProfitMargin float64           `json:"profit_margin"`
		Total        float64           `json:"total"`
		Tiers        []json.RawMessage `json:"tiers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Squares.BaseSquares != 25 || out.Squares.TotalSquares != 28 {
		t.Errorf("squares = %+v, want base 25 total 28", out.Squares)
	}
	if out.ProfitMargin != 10 {
		t.Errorf("profit_margin = %v, want 10", out.ProfitMargin)
	}
	if out.Total <= 0 {
		t.Errorf("total = %v, want positive", out.Total)
	}
	if len(out.Items) == 0 {
		t.Error("items is empty")
	}
	if len(out.Tiers) != 4 {
		t.Errorf("tiers count = %d, want 4", len(out.Tiers))
	}

	// Nothing may be persisted by a preview
	records, _ := app.FindAllRecords("estimates")
	if len(records) != 0 {
		t.Errorf("preview persisted %d estimates", len(records))
	}
}

func TestHandleEstimatePreview_WasteResolution(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *estimateInput)
		wantTotal int
	}{
		{
			"explicit zero keeps base squares",
			func(in *estimateInput) {
				zero := 0.0
				in.WastePercent = &zero
			},
			25,
		},
		{
			"omitted falls back to report suggestion",
			func(in *estimateInput) {
				in.WastePercent = nil
				in.Measurements.WastePercentage = 15
			},
			29, // ceil(25 × 1.15)
		},
		{
			"omitted with no suggestion uses default",
			func(in *estimateInput) {
				in.WastePercent = nil
			},
			28, // 25 × 1.12
		},
	}

	app := testhelpers.NewTestApp(t)
	handler := HandleEstimatePreview(app)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEstimateInput()
			tt.mutate(&in)

			req := httptest.NewRequest(http.MethodPost, "/api/estimates/preview", createEstimateBody(t, in))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var out struct {
				Squares struct {
					TotalSquares int `json:"total_squares"`
				} `json:"squares"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if out.Squares.TotalSquares != tt.wantTotal {
				t.Errorf("total_squares = %d, want %d", out.Squares.TotalSquares, tt.wantTotal)
			}
		})
	}
}

func TestHandleEstimatePreview_InvalidBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimatePreview(app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimates/preview", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleEstimatePreviewPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimatePreviewPDF(app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimates/preview/pdf", createEstimateBody(t, validEstimateInput()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "estimate-Jane-Smith.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := rec.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response body is not a PDF")
	}

	// Preview PDF generation must not save anything
	records, _ := app.FindAllRecords("estimates")
	if len(records) != 0 {
		t.Errorf("preview PDF persisted %d estimates", len(records))
	}
}

func TestHandleEstimatePreviewPDF_ValidationGate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimatePreviewPDF(app)

	in := validEstimateInput()
	in.Customer.Name = ""
	req := httptest.NewRequest(http.MethodPost, "/api/estimates/preview/pdf", createEstimateBody(t, in))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Customer name is required") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
