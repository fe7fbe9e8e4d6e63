package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/api/handler"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/pkg/router"
)

// RegisterRoutes wires the job API. More specific routes come first: the
// router matches in registration order.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/jobs", handler.CreateJob)
	r.GET("/api/v1/jobs", handler.ListJobs)
	r.GET("/api/v1/jobs/*/logs", handler.GetJobLogs)
	r.GET("/api/v1/jobs/*/summary", handler.GetJobSummary)
	r.GET("/api/v1/jobs/*/errors", handler.GetJobErrors)
	r.GET("/api/v1/jobs/*/files", handler.GetJobFiles)
	r.POST("/api/v1/jobs/*/retry", handler.RetryJob)
	// Generic job routes last
	r.GET("/api/v1/jobs/*", handler.GetJob)
	r.DELETE("/api/v1/jobs/*", handler.DeleteJob)

	r.GET("/api/v1/download/*/*", handler.DownloadFile)

	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}
