package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roofestimate/testhelpers"
)

func TestHandlePricingList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandlePricingList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/pricing", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out pricingJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(out.Materials) != 20 {
		t.Errorf("materials count = %d, want 20", len(out.Materials))
	}
	if len(out.LaborRates) != 3 {
		t.Errorf("labor rates count = %d, want 3", len(out.LaborRates))
	}
	if out.PlywoodInstallPerBoard != 17.44 {
		t.Errorf("plywood install rate = %v, want 17.44", out.PlywoodInstallPerBoard)
	}

	byKey := make(map[string]materialJSON)
	for _, m := range out.Materials {
		byKey[m.Key] = m
	}
	shingles, ok := byKey["shingles"]
	if !ok {
		t.Fatal("shingles missing from catalog projection")
	}
	if shingles.RetailPrice != 152.10 {
		t.Errorf("shingles retail = %v, want 152.10", shingles.RetailPrice)
	}
}
