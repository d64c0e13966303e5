package services

import (
	"math"
	"strconv"
	"strings"
)

// ShingleWasteFactor is the fixed cutting-loss factor applied to shingle
// squares, independent of the user waste percentage.
const ShingleWasteFactor = 1.12

// DefaultWastePercent is used when the report suggests nothing.
const DefaultWastePercent = 12.0

// SquareBreakdown is the square computation behind every quantity.
type SquareBreakdown struct {
	TotalSquaresRaw float64 `json:"total_squares_raw"`
	LowSlopeSquares float64 `json:"low_slope_squares"`
	ValidSquares    float64 `json:"valid_squares"`
	BaseSquares     int     `json:"base_squares"`
	TotalSquares    int     `json:"total_squares"`
	WastePercent    float64 `json:"waste_percent"`
}

// PitchRise parses the rise out of a pitch ratio string ("6/12" → 6).
// Malformed input falls back to 6, a common residential pitch.
func PitchRise(pitch string) int {
	num, _, ok := strings.Cut(pitch, "/")
	if !ok {
		return 6
	}
	rise, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 6
	}
	return rise
}

// isLowSlope reports whether a pitch is too flat for shingles (rise of 2
// or less). Low-slope sections get flat-roof materials instead.
func isLowSlope(pitch string) bool {
	return PitchRise(pitch) <= 2
}

// CalcSquares converts a measurement snapshot and waste percentage into the
// square counts the quantity rules consume. Low-slope areas from the
// areas-per-pitch table are excluded from the shingle-able squares; the
// waste-adjusted total rounds up twice since partial squares cannot be bought.
func CalcSquares(m RoofMeasurements, wastePercent float64) SquareBreakdown {
	b := SquareBreakdown{
		TotalSquaresRaw: m.TotalArea / 100,
		WastePercent:    wastePercent,
	}

	for _, pa := range m.AreasPerPitch {
		if isLowSlope(pa.Pitch) {
			b.LowSlopeSquares += pa.Area / 100
		}
	}

	b.ValidSquares = b.TotalSquaresRaw - b.LowSlopeSquares
	if len(m.AreasPerPitch) == 0 {
		b.ValidSquares = b.TotalSquaresRaw
	}
	if b.ValidSquares < 0 {
		b.ValidSquares = 0
	}

	b.BaseSquares = int(math.Ceil(b.ValidSquares))
	b.TotalSquares = ceilSquares(float64(b.BaseSquares) * (1 + wastePercent/100))
	return b
}

// ShingleSquares is the shingle purchase quantity: base squares under the
// fixed shingle waste factor, rounded up.
func ShingleSquares(b SquareBreakdown) int {
	return ceilSquares(float64(b.BaseSquares) * ShingleWasteFactor)
}

// ceilSquares rounds a square count up to a whole square. The value is
// snapped to six decimals first: waste factors like 1.12 are not exactly
// representable, so products that land on a whole number (25 * 1.12) come
// out a hair above it and a bare ceiling would charge an extra square.
func ceilSquares(v float64) int {
	return int(math.Ceil(math.Round(v*1e6) / 1e6))
}
