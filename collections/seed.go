package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

type laborRateDef struct {
	sortOrder    int
	pitchBracket string
	maxRise      int
	ratePerSq    float64
}

// laborRateDefs is the pitch step function for shingle installation. The
// catch-all bracket has max_rise 0.
var laborRateDefs = []laborRateDef{
	{sortOrder: 1, pitchBracket: "up to 7/12", maxRise: 7, ratePerSq: 75.00},
	{sortOrder: 2, pitchBracket: "8/12 - 9/12", maxRise: 9, ratePerSq: 90.00},
	{sortOrder: 3, pitchBracket: "10/12 and steeper", maxRise: 0, ratePerSq: 100.00},
}

// Seed populates the materials and labor_rates collections from the
// compiled-in catalog. It is safe to call on every startup because it
// returns early when materials already exist.
func Seed(app *pocketbase.PocketBase) error {
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	existing, err := app.FindAllRecords(materialsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query materials: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: materials collection is empty, inserting pricing catalog")

	laborRatesCol, err := app.FindCollectionByNameOrId("labor_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find labor_rates collection: %w", err)
	}

	catalog := services.DefaultCatalog()

	// Insert materials in a stable order so re-seeds are reproducible.
	keys := []string{
		services.MatShingles,
		services.MatUnderlayment,
		services.MatStarter,
		services.MatRidgeCaps,
		services.MatDripEdge,
		services.MatCoilNails238,
		services.MatCoilNails114,
		services.MatPlasticCapNails,
		services.MatGeocelSealant,
		services.MatKarnakTar,
		services.MatPlywood,
		services.MatDumpster,
		services.MatPermits,
		services.MatPipeFlashing2,
		services.MatPipeFlashing3,
		services.MatGooseneck4,
		services.MatGooseneck10,
		services.MatOffRidgeVent,
		services.MatFlatRoofISO,
		services.MatBaseCap,
	}

	for _, key := range keys {
		m := catalog.Material(key)
		r := core.NewRecord(materialsCol)
		r.Set("key", m.Key)
		r.Set("name", m.Name)
		r.Set("unit", m.Unit)
		r.Set("manufacturer_cost", m.ManufacturerCost)
		r.Set("retail_price", m.RetailPrice)
		r.Set("coverage", m.Coverage)
		r.Set("category", m.Category)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save material %q: %w", m.Key, err)
		}
	}

	for _, d := range laborRateDefs {
		r := core.NewRecord(laborRatesCol)
		r.Set("sort_order", d.sortOrder)
		r.Set("pitch_bracket", d.pitchBracket)
		r.Set("max_rise", d.maxRise)
		r.Set("rate_per_square", d.ratePerSq)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save labor rate %q: %w", d.pitchBracket, err)
		}
	}

	log.Printf("seed: inserted %d materials and %d labor rate brackets", len(keys), len(laborRateDefs))
	return nil
}
