package services

import (
	"math"
	"testing"
)

func TestPitchRise(t *testing.T) {
	tests := []struct {
		name  string
		pitch string
		want  int
	}{
		{"standard pitch", "6/12", 6},
		{"steep pitch", "12/12", 12},
		{"low slope", "2/12", 2},
		{"flat", "0/12", 0},
		{"with spaces", "8 /12", 8},
		{"no slash falls back", "6", 6},
		{"empty falls back", "", 6},
		{"garbage falls back", "abc/12", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PitchRise(tt.pitch); got != tt.want {
				t.Errorf("PitchRise(%q) = %d, want %d", tt.pitch, got, tt.want)
			}
		})
	}
}

func TestCalcSquares_NoAreasPerPitch(t *testing.T) {
	m := RoofMeasurements{
		TotalArea:        2500,
		PredominantPitch: "6/12",
	}

	b := CalcSquares(m, 12)

	if b.BaseSquares != 25 {
		t.Errorf("BaseSquares = %d, want 25", b.BaseSquares)
	}
	// 25 × 1.12 = 28
	if b.TotalSquares != 28 {
		t.Errorf("TotalSquares = %d, want 28", b.TotalSquares)
	}
	if math.Abs(b.ValidSquares-25.0) > 0.001 {
		t.Errorf("ValidSquares = %v, want 25", b.ValidSquares)
	}
}

func TestCalcSquares_LowSlopeExcluded(t *testing.T) {
	m := RoofMeasurements{
		TotalArea: 2500,
		AreasPerPitch: []PitchArea{
			{Pitch: "2/12", Area: 500, Percentage: 20},
			{Pitch: "6/12", Area: 2000, Percentage: 80},
		},
	}

	b := CalcSquares(m, 12)

	if math.Abs(b.LowSlopeSquares-5.0) > 0.001 {
		t.Errorf("LowSlopeSquares = %v, want 5", b.LowSlopeSquares)
	}
	if math.Abs(b.ValidSquares-20.0) > 0.001 {
		t.Errorf("ValidSquares = %v, want 20", b.ValidSquares)
	}
	if b.BaseSquares != 20 {
		t.Errorf("BaseSquares = %d, want 20", b.BaseSquares)
	}
}

func TestCalcSquares_AllLowSlope(t *testing.T) {
	m := RoofMeasurements{
		TotalArea: 1000,
		AreasPerPitch: []PitchArea{
			{Pitch: "1/12", Area: 1000, Percentage: 100},
		},
	}

	b := CalcSquares(m, 12)

	if b.ValidSquares != 0 {
		t.Errorf("ValidSquares = %v, want 0", b.ValidSquares)
	}
	if b.BaseSquares != 0 {
		t.Errorf("BaseSquares = %d, want 0", b.BaseSquares)
	}
	if b.TotalSquares != 0 {
		t.Errorf("TotalSquares = %d, want 0", b.TotalSquares)
	}
}

func TestCalcSquares_ZeroArea(t *testing.T) {
	b := CalcSquares(RoofMeasurements{}, 12)
	if b.BaseSquares != 0 || b.TotalSquares != 0 {
		t.Errorf("zero measurements should yield zero squares, got base=%d total=%d",
			b.BaseSquares, b.TotalSquares)
	}
}

func TestCalcSquares_WasteMonotonicity(t *testing.T) {
	m := RoofMeasurements{TotalArea: 2370, PredominantPitch: "7/12"}

	prev := 0
	for waste := 0.0; waste <= 30; waste += 1 {
		b := CalcSquares(m, waste)
		if b.TotalSquares < prev {
			t.Fatalf("TotalSquares decreased from %d to %d at waste=%v", prev, b.TotalSquares, waste)
		}
		prev = b.TotalSquares
	}
}

func TestCalcSquares_WholeNumberWasteProduct(t *testing.T) {
	// products that land exactly on a whole square must not round up to
	// the next one: the binary value of 25 * 1.12 sits just above 28
	tests := []struct {
		name  string
		area  float64
		waste float64
		want  int
	}{
		{"25 squares at 12%", 2500, 12, 28},
		{"50 squares at 12%", 5000, 12, 56},
		{"25 squares at 0%", 2500, 0, 25},
		{"20 squares at 10%", 2000, 10, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RoofMeasurements{TotalArea: tt.area, PredominantPitch: "6/12"}
			if b := CalcSquares(m, tt.waste); b.TotalSquares != tt.want {
				t.Errorf("CalcSquares(%v sqft, %v%%).TotalSquares = %d, want %d",
					tt.area, tt.waste, b.TotalSquares, tt.want)
			}
		})
	}
}

func TestShingleSquares(t *testing.T) {
	tests := []struct {
		name        string
		baseSquares int
		want        int
	}{
		{"exact multiple", 25, 28},
		{"rounds up", 20, 23}, // 20 × 1.12 = 22.4
		{"zero", 0, 0},
		{"single square", 1, 2}, // 1 × 1.12 = 1.12
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := SquareBreakdown{BaseSquares: tt.baseSquares}
			if got := ShingleSquares(b); got != tt.want {
				t.Errorf("ShingleSquares(base=%d) = %d, want %d", tt.baseSquares, got, tt.want)
			}
		})
	}
}
