// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app, runs collections.Setup to create all tables, and
// seeds the pricing catalog. The temporary directory is cleaned up
// automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}

	return app
}

// CreateTestEstimate creates an estimate record with the given customer name
// and returns it.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, customerName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_name", customerName)
	record.Set("address", "123 Test Street, Winter Park, FL")
	record.Set("date", "2026-08-01")
	record.Set("status", "pending")
	record.Set("selected_price_tier", "standard")
	record.Set("profit_margin", 0.0)
	record.Set("roofing_type", "GAF Timberline HDZ")
	record.Set("amount", 15000.0)
	record.Set("measurements", map[string]any{
		"total_area":        2500.0,
		"predominant_pitch": "6/12",
	})
	record.Set("material_costs", map[string]any{"base": 9000.0, "with_profit": 9000.0})
	record.Set("labor_costs", map[string]any{"base": 6000.0, "with_profit": 6000.0})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestEstimateItem creates a line item record linked to an estimate.
func CreateTestEstimateItem(t *testing.T, app *pocketbase.PocketBase, estimateID string, sortOrder int, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		t.Fatalf("failed to find estimate_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit", "per square")
	record.Set("unit_price", unitPrice)
	record.Set("total", qty*unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate item: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
