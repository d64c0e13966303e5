package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/services"
)

// catalogOrDefault loads the pricing catalog from the database, falling back
// to the compiled-in defaults when the collections are empty or unreadable.
func catalogOrDefault(app *pocketbase.PocketBase) services.Catalog {
	c, err := services.LoadCatalog(app)
	if err != nil {
		log.Printf("pricing: could not load catalog, using defaults: %v", err)
		return services.DefaultCatalog()
	}
	return c
}

type materialJSON struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	ManufacturerCost float64 `json:"manufacturer_cost"`
	RetailPrice      float64 `json:"retail_price"`
	Coverage         float64 `json:"coverage"`
	Category         string  `json:"category"`
}

type laborRateJSON struct {
	MaxRise       int     `json:"max_rise"`
	RatePerSquare float64 `json:"rate_per_square"`
}

type pricingJSON struct {
	Materials              []materialJSON  `json:"materials"`
	LaborRates             []laborRateJSON `json:"labor_rates"`
	PlywoodInstallPerBoard float64         `json:"plywood_install_per_board"`
}

// HandlePricingList returns a handler that serves the current pricing catalog.
func HandlePricingList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		c := catalogOrDefault(app)

		materials := make([]materialJSON, 0, len(c.Materials))
		for _, m := range c.Materials {
			materials = append(materials, materialJSON{
				Key:              m.Key,
				Name:             m.Name,
				Unit:             m.Unit,
				ManufacturerCost: m.ManufacturerCost,
				RetailPrice:      m.RetailPrice,
				Coverage:         m.Coverage,
				Category:         m.Category,
			})
		}
		sort.Slice(materials, func(i, j int) bool {
			if materials[i].Category != materials[j].Category {
				return materials[i].Category < materials[j].Category
			}
			return materials[i].Key < materials[j].Key
		})

		rates := make([]laborRateJSON, 0, len(c.LaborBrackets))
		for _, b := range c.LaborBrackets {
			rates = append(rates, laborRateJSON{MaxRise: b.MaxRise, RatePerSquare: b.RatePerSquare})
		}

		return e.JSON(http.StatusOK, pricingJSON{
			Materials:              materials,
			LaborRates:             rates,
			PlywoodInstallPerBoard: c.PlywoodInstallPerBoard,
		})
	}
}
