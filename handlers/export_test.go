package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"roofestimate/testhelpers"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to hyphens", "Jane Smith", "Jane-Smith"},
		{"slashes to hyphens", "path/to/file", "path-to-file"},
		{"backslashes", "path\\to\\file", "path-to-file"},
		{"colons", "file:name", "file-name"},
		{"mixed", "A / B \\ C : D", "A---B---C---D"},
		{"no special chars", "simple", "simple"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandleEstimateExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	est := testhelpers.CreateTestEstimate(t, app, "Export Customer")
	testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "Shingles", 28, 152.10)
	handler := HandleEstimateExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/api/estimates/"+est.Id+"/export/pdf", nil)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "estimate-Export-Customer.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := rec.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response body is not a PDF")
	}
}

func TestHandleEstimateExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	est := testhelpers.CreateTestEstimate(t, app, "Excel Customer")
	testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "Shingles", 28, 152.10)
	handler := HandleEstimateExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/api/estimates/"+est.Id+"/export/excel", nil)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "estimate-Excel-Customer.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("response body is empty")
	}
}

func TestHandleEstimateExport_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name    string
		handler func(e *core.RequestEvent) error
	}{
		{"pdf", HandleEstimateExportPDF(app)},
		{"excel", HandleEstimateExportExcel(app)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/estimates/nonexistent/export/"+tt.name, nil)
			req.SetPathValue("id", "nonexistent")
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := tt.handler(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})
	}
}
