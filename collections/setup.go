package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the estimates, estimate_items,
// materials and labor_rates collections exist.
func Setup(app *pocketbase.PocketBase) {
	estimates := ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address", Required: true})
		c.Fields.Add(&core.TextField{Name: "date", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "approved", "sent"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "selected_price_tier",
			Required:  true,
			Values:    []string{"standard", "economy", "premium", "custom"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "profit_margin", Required: false})
		c.Fields.Add(&core.TextField{Name: "roofing_type", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.JSONField{Name: "measurements"})
		c.Fields.Add(&core.JSONField{Name: "material_costs"})
		c.Fields.Add(&core.JSONField{Name: "labor_costs"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "estimate_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_labor"})
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:     "unit",
			Required: true,
			Values: []string{
				"per square", "per linear ft", "per piece", "per box",
				"per tube", "per bucket", "per board", "per roll", "per roof",
			},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "manufacturer_cost", Required: true})
		c.Fields.Add(&core.NumberField{Name: "retail_price", Required: true})
		c.Fields.Add(&core.NumberField{Name: "coverage", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    []string{"base", "nails_sealants", "addon", "disposal"},
			MaxSelect: 1,
		})
	})

	ensureCollection(app, "labor_rates", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "pitch_bracket", Required: true})
		c.Fields.Add(&core.NumberField{Name: "max_rise", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate_per_square", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
