package services

import "math"

// MaterialQuantity is a derived purchase quantity for one catalog material.
type MaterialQuantity struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ceilUnits rounds a coverage-driven requirement up to whole purchasable
// units. Zero coverage or zero demand yields zero units.
func ceilUnits(amount, coverage float64) float64 {
	if coverage <= 0 || amount <= 0 {
		return 0
	}
	return math.Ceil(amount / coverage)
}

// DeriveQuantities converts a measurement snapshot plus the user's add-on
// selections into per-material purchase quantities. Every coverage-driven
// quantity is independently rounded up since partial units cannot be bought.
// Missing measurements contribute zero and never fail the derivation.
func DeriveQuantities(m RoofMeasurements, sel Selections, c Catalog, wastePercent float64) ([]MaterialQuantity, SquareBreakdown) {
	b := CalcSquares(m, wastePercent)
	ts := float64(b.TotalSquares)

	ridgeHip := m.Ridges.Length + m.Hips.Length
	rakeEave := m.Rakes.Length + m.Eaves.Length

	var out []MaterialQuantity
	add := func(key string, qty float64) {
		if qty <= 0 {
			return
		}
		mat := c.Material(key)
		out = append(out, MaterialQuantity{
			Key:      key,
			Name:     mat.Name,
			Quantity: qty,
			Unit:     mat.Unit,
		})
	}

	add(MatShingles, float64(ShingleSquares(b)))
	add(MatUnderlayment, ceilUnits(ts, c.Material(MatUnderlayment).Coverage))
	add(MatStarter, ceilUnits(rakeEave, c.Material(MatStarter).Coverage))
	add(MatRidgeCaps, ceilUnits(ridgeHip, c.Material(MatRidgeCaps).Coverage))
	add(MatDripEdge, ceilUnits(rakeEave, c.Material(MatDripEdge).Coverage))
	add(MatCoilNails238, ceilUnits(ts, c.Material(MatCoilNails238).Coverage))
	add(MatCoilNails114, ceilUnits(ts, c.Material(MatCoilNails114).Coverage))
	add(MatPlasticCapNails, ceilUnits(ts, c.Material(MatPlasticCapNails).Coverage))
	add(MatGeocelSealant, ceilUnits(ts, c.Material(MatGeocelSealant).Coverage))
	add(MatKarnakTar, ceilUnits(ts, c.Material(MatKarnakTar).Coverage))

	if sel.PlywoodReplacement {
		add(MatPlywood, ceilUnits(ts, c.Material(MatPlywood).Coverage))
	}
	if sel.FlatRoofISO {
		add(MatFlatRoofISO, flatRoofSquares(b))
	}
	if sel.BaseCap {
		add(MatBaseCap, flatRoofSquares(b))
	}

	for _, pf := range sel.PipeFlashings {
		switch pf.Type {
		case PipeFlashingTwoInch:
			add(MatPipeFlashing2, float64(pf.Quantity))
		case PipeFlashingThreeInch:
			add(MatPipeFlashing3, float64(pf.Quantity))
		}
	}
	for _, v := range sel.Vents {
		switch v.Type {
		case VentGooseneck4:
			add(MatGooseneck4, float64(v.Quantity))
		case VentGooseneck10:
			add(MatGooseneck10, float64(v.Quantity))
		case VentOffRidge:
			add(MatOffRidgeVent, float64(v.Quantity))
		}
	}

	return out, b
}

// flatRoofSquares sizes flat-roof materials from the low-slope area the
// shingle squares excluded, with a one-square floor when selected on a roof
// the report shows no low-slope section for.
func flatRoofSquares(b SquareBreakdown) float64 {
	sq := math.Ceil(b.LowSlopeSquares)
	if sq < 1 {
		sq = 1
	}
	return sq
}

// DisposalQuantities are job-level units priced into the labor side:
// dumpsters by roof size and a flat permit per job.
func DisposalQuantities(b SquareBreakdown, c Catalog) []MaterialQuantity {
	ts := float64(b.TotalSquares)
	var out []MaterialQuantity

	if dumpsters := ceilUnits(ts, c.Material(MatDumpster).Coverage); dumpsters > 0 {
		out = append(out, MaterialQuantity{
			Key:      MatDumpster,
			Name:     c.Material(MatDumpster).Name,
			Quantity: dumpsters,
			Unit:     c.Material(MatDumpster).Unit,
		})
	}
	out = append(out, MaterialQuantity{
		Key:      MatPermits,
		Name:     c.Material(MatPermits).Name,
		Quantity: 1,
		Unit:     c.Material(MatPermits).Unit,
	})
	return out
}
