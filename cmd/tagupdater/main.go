package main

import (
	"log"

	"github.com/joho/godotenv"

	_ "github.com/dalton-nascimento-typeform/tiktok-tag-updater/docs"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/api"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/api/handler"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/store"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/pkg/router"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/pkg/utils"
)

// @title TikTok Tracking Tag Updater API
// @version 1.0
// @description API for updating tracking URLs in TikTok export files from DCM tag files.
// @BasePath /api/v1
func main() {
	// .env is optional; environment variables win either way
	godotenv.Load()

	addr := utils.EnvOr("TAG_UPDATER_ADDR", ":8080")
	dbPath := utils.EnvOr("TAG_UPDATER_DB", "tagupdater.db")
	outputDir := utils.EnvOr("TAG_UPDATER_OUTPUT_DIR", "outputs")

	// Init DB
	if err := store.InitDB(dbPath); err != nil {
		log.Fatalf("failed to init job database: %v", err)
	}

	// Output directory for job artifacts
	handler.Outputs = utils.NewOutputManager(outputDir)
	if err := handler.Outputs.EnsureBaseDir(); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(addr)
}
