package services

import (
	"errors"
	"strings"
	"time"
)

// Validation failures that block saving or exporting an estimate.
var (
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrMissingAddress      = errors.New("customer address is required")
	ErrNoTierSelected      = errors.New("a pricing tier must be selected")
)

// RoofingType is the single shingle product currently sold.
const RoofingType = "GAF Timberline HDZ"

// Estimate statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusSent     = "sent"
)

// CustomerInfo identifies who the estimate is for.
type CustomerInfo struct {
	Name    string `json:"customer_name"`
	Address string `json:"address"`
}

// Estimate is the persistable aggregate: customer identity, the computed
// cost breakdown, and the measurement snapshot it was priced from.
type Estimate struct {
	CustomerName string           `json:"customer_name"`
	Address      string           `json:"address"`
	Date         string           `json:"date"`
	Status       string           `json:"status"`
	Tier         PriceTier        `json:"selected_price_tier"`
	ProfitMargin float64          `json:"profit_margin"`
	RoofingType  string           `json:"roofing_type"`
	Amount       float64          `json:"amount"`
	Measurements RoofMeasurements `json:"measurements"`
	MaterialCost CostPair         `json:"material_costs"`
	LaborCost    CostPair         `json:"labor_costs"`
	Items        []LineItem       `json:"items"`
}

// ValidateCustomer checks the identity fields the save and export paths
// require. Whitespace-only values count as empty.
func ValidateCustomer(cust CustomerInfo) error {
	if strings.TrimSpace(cust.Name) == "" {
		return ErrMissingCustomerName
	}
	if strings.TrimSpace(cust.Address) == "" {
		return ErrMissingAddress
	}
	return nil
}

// validTier reports whether tier is one of the four named tiers.
func validTier(tier PriceTier) bool {
	switch tier {
	case TierStandard, TierEconomy, TierPremium, TierCustom:
		return true
	}
	return false
}

// AssembleEstimate builds the persistable aggregate from a computed
// breakdown. It is the validation gate: a blank customer name or address, or
// a missing tier, fails here before any persistence or PDF work happens.
func AssembleEstimate(cust CustomerInfo, m RoofMeasurements, breakdown EstimateBreakdown, tier PriceTier) (Estimate, error) {
	if err := ValidateCustomer(cust); err != nil {
		return Estimate{}, err
	}
	if !validTier(tier) {
		return Estimate{}, ErrNoTierSelected
	}

	return Estimate{
		CustomerName: strings.TrimSpace(cust.Name),
		Address:      strings.TrimSpace(cust.Address),
		Date:         time.Now().Format("2006-01-02"),
		Status:       StatusPending,
		Tier:         tier,
		ProfitMargin: breakdown.ProfitMargin,
		RoofingType:  RoofingType,
		Amount:       breakdown.Total,
		Measurements: m,
		MaterialCost: breakdown.MaterialCost,
		LaborCost:    breakdown.LaborCost,
		Items:        breakdown.Items,
	}, nil
}
