package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/store"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/updater"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/pkg/utils"
)

// Outputs manages where job artifacts land. The server binary points it at
// the configured output directory on startup.
var Outputs = utils.NewOutputManager("outputs")

// CreateJob creates and starts a new tag update job
// @Summary Create a new tag update job
// @Description Create and start a job that matches a TikTok export against DCM tag files and rewrites its tracking URLs
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body model.UpdateJobSpec true "Job configuration"
// @Success 200 {object} map[string]interface{} "Job created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs [post]
func CreateJob(w http.ResponseWriter, r *http.Request) {
	var spec model.UpdateJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// 1. Validate payload
	if spec.Export.URL == "" {
		http.Error(w, "An export file is required", http.StatusBadRequest)
		return
	}
	if len(spec.Tags) == 0 {
		http.Error(w, "At least one tag file is required", http.StatusBadRequest)
		return
	}

	// 2. Generate job ID
	jobID := uuid.New().String()

	// 3. Save job to DB
	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	// 4. Start the job asynchronously
	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.JobTimeout))

	go func() {
		defer cancel()
		if err := updater.Run(ctx, jobID, spec, Outputs); err != nil {
			store.SaveJobError(jobID, err)
		}
	}()

	// 5. Return response
	resp := map[string]interface{}{
		"message":   "Job created successfully!",
		"jobID":     jobID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListJobs retrieves all tag update jobs
// @Summary List all jobs
// @Description Get a list of all tag update jobs with their current status
// @Tags jobs
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of jobs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs [get]
func ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch jobs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetJob retrieves a specific job
// @Summary Get job
// @Description Retrieve details of a specific tag update job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job details"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /jobs/{id} [get]
func GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "")
	if !ok {
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// GetJobLogs retrieves the processing log of a job
// @Summary Get job logs
// @Description Retrieve the ordered processing log of a tag update job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param limit query int false "Maximum number of log lines"
// @Success 200 {object} map[string]interface{} "Job logs"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/logs [get]
func GetJobLogs(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/logs")
	if !ok {
		return
	}

	// Get limit from query parameter
	limit := 1000 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	logs, err := store.GetJobLogLines(jobID, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id": jobID,
		"logs":   logs,
		"count":  len(logs),
		"limit":  limit,
	})
}

// GetJobSummary retrieves the counters of a job's processing pass
// @Summary Get job summary
// @Description Retrieve the row, match and update counters of a tag update job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job summary"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 404 {object} map[string]interface{} "Summary not found"
// @Router /jobs/{id}/summary [get]
func GetJobSummary(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/summary")
	if !ok {
		return
	}

	summary, err := store.GetJobSummary(jobID)
	if err != nil {
		http.Error(w, "Summary not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":  jobID,
		"summary": summary,
	})
}

// GetJobErrors retrieves errors recorded for a job
// @Summary Get job errors
// @Description Retrieve all errors that occurred during job execution
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job errors"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/errors [get]
func GetJobErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/errors")
	if !ok {
		return
	}

	errors, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id": jobID,
		"errors": errors,
		"count":  len(errors),
	})
}

// GetJobFiles retrieves the output files of a job
// @Summary Get job files
// @Description Retrieve the output files (updated export and log) of a job, with download URLs
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job files"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/files [get]
func GetJobFiles(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/files")
	if !ok {
		return
	}

	files, err := store.GetOutputFiles(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve files", http.StatusInternalServerError)
		return
	}

	for _, file := range files {
		if name, ok := file["file_name"].(string); ok {
			file["download_url"] = Outputs.DownloadURL(jobID, name)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id": jobID,
		"files":  files,
		"count":  len(files),
	})
}

// RetryJob re-runs a job with its stored configuration
// @Summary Retry job
// @Description Re-run a tag update job with the same configuration
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Retry initiated"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/retry [post]
func RetryJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/retry")
	if !ok {
		return
	}

	jobData, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	spec, ok := jobData["spec"].(model.UpdateJobSpec)
	if !ok {
		http.Error(w, "Invalid job specification", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.JobTimeout))
	go func() {
		defer cancel()
		if err := updater.Run(ctx, jobID, spec, Outputs); err != nil {
			fmt.Printf("❌ Retry failed for job %s: %v\n", jobID, err)
		} else {
			fmt.Printf("✅ Retry successful for job %s\n", jobID)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Retry initiated",
		"job_id":  jobID,
		"status":  "retrying",
	})
}

// DeleteJob deletes a job and its artifacts
// @Summary Delete job
// @Description Delete a job together with its output files and stored data
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job deleted"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id} [delete]
func DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "")
	if !ok {
		return
	}

	if _, err := store.GetJob(jobID); err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	files, err := store.GetOutputFiles(jobID)
	if err != nil {
		files = nil
	}
	for _, file := range files {
		if filePath, ok := file["file_path"].(string); ok {
			os.Remove(filePath)
		}
	}
	if jobDir, err := Outputs.JobOutputDir(jobID); err == nil {
		os.RemoveAll(jobDir)
	}

	if err := store.DeleteJob(jobID); err != nil {
		http.Error(w, "Failed to delete job from database", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Job and all artifacts deleted successfully",
		"job_id":        jobID,
		"files_deleted": len(files),
	})
}

// DownloadFile serves a job output file for download
// @Summary Download file
// @Description Download an output file (updated export or log) of a job
// @Tags files
// @Accept json
// @Produce application/octet-stream
// @Param jobID path string true "Job ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 400 {object} map[string]interface{} "Invalid URL format"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{jobID}/{filename} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/{jobID}/{filename}
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) < 5 {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	jobID := pathParts[3]
	fileName := pathParts[4]

	filePath, err := Outputs.OutputFilePath(jobID, fileName)
	if err != nil {
		http.Error(w, "Failed to resolve file path", http.StatusInternalServerError)
		return
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}

// jobIDFromPath extracts the job ID from /api/v1/jobs/{id}{suffix} paths,
// writing the error response itself when the path is malformed.
func jobIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	prefix := "/api/v1/jobs/"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}

	jobID := path[len(prefix) : len(path)-len(suffix)]
	if jobID == "" || strings.Contains(jobID, "/") {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return "", false
	}
	return jobID, true
}
