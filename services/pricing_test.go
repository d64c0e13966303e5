package services

import (
	"math"
	"reflect"
	"testing"
)

func TestTierMargin(t *testing.T) {
	tests := []struct {
		name         string
		tier         PriceTier
		customMargin float64
		want         float64
	}{
		{"standard", TierStandard, 0, 0},
		{"economy", TierEconomy, 0, 10},
		{"premium", TierPremium, 0, 20},
		{"custom", TierCustom, 35, 35},
		{"custom clamped low", TierCustom, -10, 0},
		{"custom clamped high", TierCustom, 150, 100},
		{"custom ignores other tiers", TierEconomy, 99, 10},
		{"unknown tier", PriceTier("deluxe"), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TierMargin(tt.tier, tt.customMargin)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("TierMargin(%q, %v) = %v, want %v", tt.tier, tt.customMargin, got, tt.want)
			}
		})
	}
}

func TestComputeEstimate_EconomyProfit(t *testing.T) {
	m := RoofMeasurements{
		TotalArea:        2500,
		PredominantPitch: "6/12",
		Ridges:           LengthMeasurement{Length: 100},
		Rakes:            LengthMeasurement{Length: 140},
		Eaves:            LengthMeasurement{Length: 120},
	}

	b := ComputeEstimate(m, Selections{}, DefaultCatalog(), EstimateOptions{Tier: TierEconomy})

	if math.Abs(b.ProfitMargin-10) > 0.001 {
		t.Errorf("ProfitMargin = %v, want 10", b.ProfitMargin)
	}
	// each side carries its own 10% profit
	if math.Abs(b.MaterialCost.WithProfit-b.MaterialCost.Base*1.10) > 0.001 {
		t.Errorf("material with profit = %v, want %v", b.MaterialCost.WithProfit, b.MaterialCost.Base*1.10)
	}
	if math.Abs(b.LaborCost.WithProfit-b.LaborCost.Base*1.10) > 0.001 {
		t.Errorf("labor with profit = %v, want %v", b.LaborCost.WithProfit, b.LaborCost.Base*1.10)
	}
	wantTotal := b.MaterialCost.WithProfit + b.LaborCost.WithProfit
	if math.Abs(b.Total-wantTotal) > 0.001 {
		t.Errorf("Total = %v, want %v", b.Total, wantTotal)
	}
}

func TestComputeEstimate_LaborBracket(t *testing.T) {
	tests := []struct {
		name  string
		pitch string
		rate  float64
	}{
		{"shallow", "5/12", 75},
		{"bracket boundary", "7/12", 75},
		{"mid bracket", "8/12", 90},
		{"upper boundary", "9/12", 90},
		{"steep", "10/12", 100},
		{"very steep", "12/12", 100},
	}

	c := DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RoofMeasurements{TotalArea: 2500, PredominantPitch: tt.pitch}
			b := ComputeEstimate(m, Selections{}, c, EstimateOptions{Tier: TierStandard})

			var got float64
			for _, item := range b.Items {
				if item.Name == "Shingle Installation" {
					got = item.UnitPrice
				}
			}
			if math.Abs(got-tt.rate) > 0.001 {
				t.Errorf("installation rate for %s = %v, want %v", tt.pitch, got, tt.rate)
			}
		})
	}
}

func TestComputeEstimate_LaborIncludesDisposal(t *testing.T) {
	m := RoofMeasurements{TotalArea: 2500, PredominantPitch: "6/12"}
	b := ComputeEstimate(m, Selections{PlywoodReplacement: true}, DefaultCatalog(), EstimateOptions{Tier: TierStandard})

	laborNames := make(map[string]bool)
	var laborSum float64
	for _, item := range b.Items {
		if item.IsLabor {
			laborNames[item.Name] = true
			laborSum += item.Total
		}
	}

	for _, want := range []string{"Shingle Installation", "Plywood Installation"} {
		if !laborNames[want] {
			t.Errorf("labor items missing %q: %v", want, laborNames)
		}
	}
	// dumpster and permits are priced into the labor side
	if len(laborNames) != 4 {
		t.Errorf("expected 4 labor items, got %d: %v", len(laborNames), laborNames)
	}
	if math.Abs(laborSum-b.LaborCost.Base) > 0.001 {
		t.Errorf("labor items sum to %v, LaborCost.Base = %v", laborSum, b.LaborCost.Base)
	}
}

func TestComputeEstimate_TierOrdering(t *testing.T) {
	m := RoofMeasurements{TotalArea: 2500, PredominantPitch: "6/12"}
	b := ComputeEstimate(m, Selections{}, DefaultCatalog(), EstimateOptions{Tier: TierStandard})

	byTier := make(map[PriceTier]TierCard)
	for _, card := range b.Tiers {
		byTier[card.Tier] = card
	}

	standard := byTier[TierStandard].Total
	economy := byTier[TierEconomy].Total
	premium := byTier[TierPremium].Total

	if !(standard <= economy && economy <= premium) {
		t.Errorf("tier totals out of order: standard=%v economy=%v premium=%v",
			standard, economy, premium)
	}
	if standard <= 0 {
		t.Errorf("standard total = %v, want positive", standard)
	}
}

func TestComputeEstimate_Idempotent(t *testing.T) {
	m := RoofMeasurements{
		TotalArea:        2370,
		PredominantPitch: "8/12",
		Ridges:           LengthMeasurement{Length: 87},
		Valleys:          LengthMeasurement{Length: 42},
		Rakes:            LengthMeasurement{Length: 142},
		Eaves:            LengthMeasurement{Length: 119},
	}
	sel := Selections{
		FlatRoofISO: true,
		Vents:       []AddonQuantity{{Type: VentGooseneck4, Quantity: 2}},
	}
	opts := EstimateOptions{Tier: TierCustom, CustomMargin: 17.5, WastePercent: 15}
	c := DefaultCatalog()

	first := ComputeEstimate(m, sel, c, opts)
	second := ComputeEstimate(m, sel, c, opts)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated computation produced different breakdowns")
	}
}

func TestComputeEstimate_ZeroWastePassesThrough(t *testing.T) {
	m := RoofMeasurements{TotalArea: 2500, PredominantPitch: "6/12"}
	b := ComputeEstimate(m, Selections{}, DefaultCatalog(),
		EstimateOptions{Tier: TierStandard, WastePercent: 0})

	if math.Abs(b.Squares.WastePercent) > 0.001 {
		t.Errorf("WastePercent = %v, want 0", b.Squares.WastePercent)
	}
	if b.Squares.TotalSquares != b.Squares.BaseSquares {
		t.Errorf("TotalSquares = %d, want base %d at zero waste",
			b.Squares.TotalSquares, b.Squares.BaseSquares)
	}
}

func TestComputeEstimate_WasteMonotonicity(t *testing.T) {
	m := RoofMeasurements{TotalArea: 2500, PredominantPitch: "6/12"}
	c := DefaultCatalog()

	prev := 0
	for waste := 0.0; waste <= 30; waste += 1 {
		b := ComputeEstimate(m, Selections{}, c, EstimateOptions{Tier: TierStandard, WastePercent: waste})
		if b.Squares.TotalSquares < prev {
			t.Fatalf("TotalSquares decreased from %d to %d at waste=%v",
				prev, b.Squares.TotalSquares, waste)
		}
		prev = b.Squares.TotalSquares
	}
}
