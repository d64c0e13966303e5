// Package services provides the pricing engine, measurement extraction and
// document generation for roofing estimates.
package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// Units of measure for catalog materials.
const (
	UnitPerSquare   = "per square"
	UnitPerLinearFt = "per linear ft"
	UnitPerPiece    = "per piece"
	UnitPerBox      = "per box"
	UnitPerTube     = "per tube"
	UnitPerBucket   = "per bucket"
	UnitPerBoard    = "per board"
	UnitPerRoll     = "per roll"
	UnitPerRoof     = "per roof"
)

// Material categories. Base materials are always included; addons are priced
// only when selected; disposal covers job-level charges folded into labor.
const (
	CategoryBase         = "base"
	CategoryNailsSealant = "nails_sealants"
	CategoryAddon        = "addon"
	CategoryDisposal     = "disposal"
)

// Catalog material keys.
const (
	MatShingles        = "shingles"
	MatUnderlayment    = "underlayment"
	MatStarter         = "starter"
	MatRidgeCaps       = "ridge_caps"
	MatDripEdge        = "drip_edge"
	MatCoilNails238    = "coil_nails_2_3_8"
	MatCoilNails114    = "coil_nails_1_1_4"
	MatPlasticCapNails = "plastic_cap_nails"
	MatGeocelSealant   = "geocel_sealant"
	MatKarnakTar       = "karnak_tar"
	MatPlywood         = "plywood"
	MatDumpster        = "dumpster"
	MatPermits         = "permits"
	MatPipeFlashing2   = "pipe_flashing_2"
	MatPipeFlashing3   = "pipe_flashing_3"
	MatGooseneck4      = "gooseneck_4"
	MatGooseneck10     = "gooseneck_10"
	MatOffRidgeVent    = "off_ridge_vent"
	MatFlatRoofISO     = "flat_roof_iso"
	MatBaseCap         = "base_cap"
)

// Material is one row of the pricing catalog.
type Material struct {
	Key              string
	Name             string
	Unit             string
	ManufacturerCost float64
	RetailPrice      float64
	// Coverage is how much one purchasable unit covers, in squares for
	// area-driven materials and linear feet for length-driven ones.
	// Zero for per-piece addons and flat charges.
	Coverage float64
	Category string
}

// LaborBracket maps a maximum pitch rise to an installation rate per square.
// A zero MaxRise marks the catch-all bracket.
type LaborBracket struct {
	MaxRise       int
	RatePerSquare float64
}

// Catalog is the pricing source of truth the engine computes from.
type Catalog struct {
	Materials map[string]Material
	// LaborBrackets is ordered by ascending MaxRise with the catch-all last.
	LaborBrackets          []LaborBracket
	PlywoodInstallPerBoard float64
}

// Material returns the catalog entry for key. Unknown keys return a zero
// Material so quantity and price arithmetic degrades to zero rather than
// panicking.
func (c Catalog) Material(key string) Material {
	return c.Materials[key]
}

// LaborRate returns the installation rate per square for a pitch rise.
func (c Catalog) LaborRate(rise int) float64 {
	for _, b := range c.LaborBrackets {
		if b.MaxRise != 0 && rise <= b.MaxRise {
			return b.RatePerSquare
		}
	}
	if n := len(c.LaborBrackets); n > 0 {
		return c.LaborBrackets[n-1].RatePerSquare
	}
	return 0
}

// DefaultCatalog returns the compiled-in GAF pricing used to seed the
// materials and labor_rates collections and to back the engine in tests.
func DefaultCatalog() Catalog {
	materials := []Material{
		{Key: MatShingles, Name: "GAF Timberline HDZ SG Shingles", Unit: UnitPerSquare, ManufacturerCost: 121.68, RetailPrice: 152.10, Coverage: 1, Category: CategoryBase},
		{Key: MatUnderlayment, Name: "GAF FeltBuster Synthetic Underlayment", Unit: UnitPerRoll, ManufacturerCost: 83.95, RetailPrice: 117.50, Coverage: 1.6, Category: CategoryBase},
		{Key: MatStarter, Name: "GAF ProStart Starter Strip", Unit: UnitPerBox, ManufacturerCost: 50.60, RetailPrice: 63.25, Coverage: 120, Category: CategoryBase},
		{Key: MatRidgeCaps, Name: "GAF Seal-A-Ridge Cap Shingles", Unit: UnitPerBox, ManufacturerCost: 53.13, RetailPrice: 66.41, Coverage: 20, Category: CategoryBase},
		{Key: MatDripEdge, Name: "ACM Galvalume Drip Edge", Unit: UnitPerPiece, ManufacturerCost: 6.00, RetailPrice: 7.50, Coverage: 9, Category: CategoryBase},
		{Key: MatCoilNails238, Name: "Coil Nails 2 3/8\"", Unit: UnitPerBox, ManufacturerCost: 64.44, RetailPrice: 66.69, Coverage: 24, Category: CategoryNailsSealant},
		{Key: MatCoilNails114, Name: "Coil Nails 1 1/4\"", Unit: UnitPerBox, ManufacturerCost: 53.89, RetailPrice: 58.78, Coverage: 15, Category: CategoryNailsSealant},
		{Key: MatPlasticCapNails, Name: "Plastic Cap Nails", Unit: UnitPerBox, ManufacturerCost: 39.44, RetailPrice: 41.39, Coverage: 20, Category: CategoryNailsSealant},
		{Key: MatGeocelSealant, Name: "Geocel 2300 Sealant", Unit: UnitPerTube, ManufacturerCost: 9.69, RetailPrice: 12.11, Coverage: 20, Category: CategoryNailsSealant},
		{Key: MatKarnakTar, Name: "Karnak 19 Roof Tar", Unit: UnitPerBucket, ManufacturerCost: 42.06, RetailPrice: 58.33, Coverage: 20, Category: CategoryNailsSealant},
		{Key: MatPlywood, Name: "Plywood 1/2\" CDX 4x8", Unit: UnitPerBoard, ManufacturerCost: 21.76, RetailPrice: 27.20, Coverage: 0.32, Category: CategoryAddon},
		{Key: MatDumpster, Name: "Dumpster 12 Yard", Unit: UnitPerPiece, ManufacturerCost: 550.00, RetailPrice: 550.00, Coverage: 30, Category: CategoryDisposal},
		{Key: MatPermits, Name: "Permits and Inspections", Unit: UnitPerRoof, ManufacturerCost: 2000.00, RetailPrice: 2000.00, Category: CategoryDisposal},
		{Key: MatPipeFlashing2, Name: "Pipe Flashing 2\"", Unit: UnitPerPiece, ManufacturerCost: 20.00, RetailPrice: 25.00, Category: CategoryAddon},
		{Key: MatPipeFlashing3, Name: "Pipe Flashing 3\"", Unit: UnitPerPiece, ManufacturerCost: 28.00, RetailPrice: 35.00, Category: CategoryAddon},
		{Key: MatGooseneck4, Name: "Gooseneck Vent 4\"", Unit: UnitPerPiece, ManufacturerCost: 36.00, RetailPrice: 45.00, Category: CategoryAddon},
		{Key: MatGooseneck10, Name: "Gooseneck Vent 10\"", Unit: UnitPerPiece, ManufacturerCost: 52.00, RetailPrice: 65.00, Category: CategoryAddon},
		{Key: MatOffRidgeVent, Name: "Off Ridge Vent", Unit: UnitPerPiece, ManufacturerCost: 28.00, RetailPrice: 35.00, Category: CategoryAddon},
		{Key: MatFlatRoofISO, Name: "Flat Roof ISO Board", Unit: UnitPerSquare, ManufacturerCost: 76.00, RetailPrice: 95.00, Coverage: 1, Category: CategoryAddon},
		{Key: MatBaseCap, Name: "Modified Bitumen Base & Cap", Unit: UnitPerSquare, ManufacturerCost: 100.00, RetailPrice: 125.00, Coverage: 1, Category: CategoryAddon},
	}

	byKey := make(map[string]Material, len(materials))
	for _, m := range materials {
		byKey[m.Key] = m
	}

	return Catalog{
		Materials: byKey,
		LaborBrackets: []LaborBracket{
			{MaxRise: 7, RatePerSquare: 75.00},
			{MaxRise: 9, RatePerSquare: 90.00},
			{MaxRise: 0, RatePerSquare: 100.00},
		},
		PlywoodInstallPerBoard: 17.44,
	}
}

// LoadCatalog builds the pricing catalog from the materials and labor_rates
// collections so re-pricing requires no code change. Labor options not stored
// as brackets (plywood install) fall back to the compiled-in defaults.
func LoadCatalog(app core.App) (Catalog, error) {
	records, err := app.FindAllRecords("materials")
	if err != nil {
		return Catalog{}, fmt.Errorf("load materials: %w", err)
	}

	byKey := make(map[string]Material, len(records))
	for _, r := range records {
		m := Material{
			Key:              r.GetString("key"),
			Name:             r.GetString("name"),
			Unit:             r.GetString("unit"),
			ManufacturerCost: r.GetFloat("manufacturer_cost"),
			RetailPrice:      r.GetFloat("retail_price"),
			Coverage:         r.GetFloat("coverage"),
			Category:         r.GetString("category"),
		}
		byKey[m.Key] = m
	}

	rateRecords, err := app.FindRecordsByFilter("labor_rates", "", "+sort_order", 0, 0)
	if err != nil {
		return Catalog{}, fmt.Errorf("load labor_rates: %w", err)
	}

	var brackets []LaborBracket
	for _, r := range rateRecords {
		brackets = append(brackets, LaborBracket{
			MaxRise:       r.GetInt("max_rise"),
			RatePerSquare: r.GetFloat("rate_per_square"),
		})
	}

	c := Catalog{
		Materials:              byKey,
		LaborBrackets:          brackets,
		PlywoodInstallPerBoard: DefaultCatalog().PlywoodInstallPerBoard,
	}
	if len(c.LaborBrackets) == 0 {
		c.LaborBrackets = DefaultCatalog().LaborBrackets
	}
	return c, nil
}
