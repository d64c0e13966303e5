package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"roofestimate/collections"
	"roofestimate/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed the pricing catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Report upload ────────────────────────────────────────
		se.Router.POST("/api/reports", handlers.HandleReportUpload(app))

		// ── Estimate preview (no persistence) ───────────────────
		se.Router.POST("/api/estimates/preview", handlers.HandleEstimatePreview(app))
		se.Router.POST("/api/estimates/preview/pdf", handlers.HandleEstimatePreviewPDF(app))

		// ── Estimate CRUD ────────────────────────────────────────
		se.Router.POST("/api/estimates", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/estimates", handlers.HandleEstimateList(app))
		se.Router.PATCH("/api/estimates/{id}/status", handlers.HandleEstimateStatusUpdate(app))
		se.Router.DELETE("/api/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Estimate export ──────────────────────────────────────
		se.Router.GET("/api/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(app))
		se.Router.GET("/api/estimates/{id}/export/excel", handlers.HandleEstimateExportExcel(app))

		// Estimate detail (after specific /estimates/{id}/* routes)
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateDetail(app))

		// ── Pricing catalog ──────────────────────────────────────
		se.Router.GET("/api/pricing", handlers.HandlePricingList(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
