package services

// PriceTier is a named profit-margin preset.
type PriceTier string

const (
	TierStandard PriceTier = "standard"
	TierEconomy  PriceTier = "economy"
	TierPremium  PriceTier = "premium"
	TierCustom   PriceTier = "custom"
)

// TierMargin maps a tier to its profit margin percentage. The custom tier's
// value is clamped to [0, 100] here so programmatic input cannot produce a
// negative or runaway margin; unknown tiers price at 0%.
func TierMargin(tier PriceTier, customMargin float64) float64 {
	switch tier {
	case TierStandard:
		return 0
	case TierEconomy:
		return 10
	case TierPremium:
		return 20
	case TierCustom:
		if customMargin < 0 {
			return 0
		}
		if customMargin > 100 {
			return 100
		}
		return customMargin
	}
	return 0
}

// LineItem is one priced row of the estimate.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	IsLabor   bool    `json:"is_labor,omitempty"`
}

// CostPair holds a subtotal before and after profit.
type CostPair struct {
	Base       float64 `json:"base"`
	WithProfit float64 `json:"with_profit"`
}

// EstimateOptions are the user-tunable pricing inputs. WastePercent is used
// as given, zero included; callers with an unset waste resolve it before
// calling (the request binding falls back to the report suggestion, then
// DefaultWastePercent).
type EstimateOptions struct {
	Tier         PriceTier `json:"tier"`
	CustomMargin float64   `json:"custom_margin"`
	WastePercent float64   `json:"waste_percent"`
}

// TierCard is one column of the tier comparison shown alongside the estimate.
type TierCard struct {
	Tier      PriceTier `json:"tier"`
	Margin    float64   `json:"margin"`
	PerSquare float64   `json:"per_square"`
	Total     float64   `json:"total"`
}

// EstimateBreakdown is the full computed output of the pricing engine.
type EstimateBreakdown struct {
	Squares      SquareBreakdown `json:"squares"`
	Items        []LineItem      `json:"items"`
	MaterialCost CostPair        `json:"material_costs"`
	LaborCost    CostPair        `json:"labor_costs"`
	ProfitMargin float64         `json:"profit_margin"`
	Total        float64         `json:"total"`
	Tiers        []TierCard      `json:"tiers"`
}

// ComputeEstimate runs the full pricing pipeline: derive quantities, price
// them at retail, price the labor from the pitch bracket, then apply the
// selected tier's margin to materials and labor independently. The final
// total is the full material+labor+profit sum. Pure and deterministic: the
// same inputs always produce the same breakdown.
func ComputeEstimate(m RoofMeasurements, sel Selections, c Catalog, opts EstimateOptions) EstimateBreakdown {
	quantities, squares := DeriveQuantities(m, sel, c, opts.WastePercent)

	var items []LineItem
	var materialBase float64
	for _, q := range quantities {
		mat := c.Material(q.Key)
		item := LineItem{
			Name:      q.Name,
			Quantity:  q.Quantity,
			Unit:      q.Unit,
			UnitPrice: mat.RetailPrice,
			Total:     q.Quantity * mat.RetailPrice,
		}
		materialBase += item.Total
		items = append(items, item)
	}

	rise := PitchRise(m.PredominantPitch)
	laborRate := c.LaborRate(rise)
	laborSquares := float64(squares.TotalSquares)

	var laborBase float64
	addLabor := func(name string, qty float64, unit string, unitPrice float64) {
		item := LineItem{
			Name:      name,
			Quantity:  qty,
			Unit:      unit,
			UnitPrice: unitPrice,
			Total:     qty * unitPrice,
			IsLabor:   true,
		}
		laborBase += item.Total
		items = append(items, item)
	}

	addLabor("Shingle Installation", laborSquares, UnitPerSquare, laborRate)
	if sel.PlywoodReplacement {
		boards := ceilUnits(laborSquares, c.Material(MatPlywood).Coverage)
		addLabor("Plywood Installation", boards, UnitPerBoard, c.PlywoodInstallPerBoard)
	}
	for _, d := range DisposalQuantities(squares, c) {
		addLabor(d.Name, d.Quantity, d.Unit, c.Material(d.Key).RetailPrice)
	}

	margin := TierMargin(opts.Tier, opts.CustomMargin)
	breakdown := EstimateBreakdown{
		Squares: squares,
		Items:   items,
		MaterialCost: CostPair{
			Base:       materialBase,
			WithProfit: materialBase * (1 + margin/100),
		},
		LaborCost: CostPair{
			Base:       laborBase,
			WithProfit: laborBase * (1 + margin/100),
		},
		ProfitMargin: margin,
	}
	breakdown.Total = breakdown.MaterialCost.WithProfit + breakdown.LaborCost.WithProfit
	breakdown.Tiers = tierComparison(materialBase, laborBase, squares, opts.CustomMargin)
	return breakdown
}

// tierComparison prices the same cost base under every tier so the customer
// can compare per-square rates side by side.
func tierComparison(materialBase, laborBase float64, squares SquareBreakdown, customMargin float64) []TierCard {
	base := materialBase + laborBase

	var perSquare float64
	if squares.TotalSquares > 0 {
		perSquare = base / float64(squares.TotalSquares)
	}

	tiers := []PriceTier{TierStandard, TierEconomy, TierPremium, TierCustom}
	cards := make([]TierCard, 0, len(tiers))
	for _, t := range tiers {
		margin := TierMargin(t, customMargin)
		cards = append(cards, TierCard{
			Tier:      t,
			Margin:    margin,
			PerSquare: perSquare * (1 + margin/100),
			Total:     base * (1 + margin/100),
		})
	}
	return cards
}
