package updater

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/dataset"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/store"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/pkg/utils"
)

// LogFileName is the processing log written next to the updated export.
const LogFileName = "updater.log"

// ------------------- Job Runner -------------------

// Run executes one tag update job end to end: load the export and tag
// files, process, write the outputs and record everything in the store.
func Run(ctx context.Context, jobID string, spec model.UpdateJobSpec, outputs *utils.OutputManager) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting tag update job: %s\n", jobID)

	store.UpdateJobStatus(jobID, "running")

	// Defer function to handle status updates on completion/error
	defer func() {
		if err != nil {
			store.UpdateJobStatus(jobID, "failed")
			store.SaveJobError(jobID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, utils.ParseDuration(spec.JobTimeout))
	defer cancel()

	// --- LOADING STAGE ---
	store.UpdateJobStatus(jobID, "loading")

	ads, err := dataset.LoadAdExport(ctx, spec.Export)
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}
	fmt.Printf("📄 Export loaded: %d rows from %s\n", len(ads), spec.Export.URL)

	tagFiles := make([]model.TagFile, 0, len(spec.Tags))
	for i, src := range spec.Tags {
		tagFile, loadErr := dataset.LoadTagFile(ctx, src)
		if loadErr != nil {
			return fmt.Errorf("load tag file %d: %w", i+1, loadErr)
		}
		fmt.Printf("📄 Tag file %d loaded: %d rows from %s\n", i+1, len(tagFile.Records), src.URL)
		tagFiles = append(tagFiles, tagFile)
	}

	// --- PROCESSING STAGE ---
	store.UpdateJobStatus(jobID, "processing")

	result := ProcessAll(ads, tagFiles, spec.Workers)
	fmt.Printf("🔄 Processed %d rows: %d matches, %d click updates, %d impression updates\n",
		result.Summary.TotalRows, result.Summary.MatchesFound,
		result.Summary.ClickURLUpdates, result.Summary.ImpressionURLUpdates)

	if err := store.SaveJobLogLines(jobID, result.LogLines); err != nil {
		fmt.Printf("❌ Failed to save log lines for job %s: %v\n", jobID, err)
	}
	if err := store.SaveJobSummary(jobID, result.Summary); err != nil {
		fmt.Printf("❌ Failed to save summary for job %s: %v\n", jobID, err)
	}

	// --- EXPORT STAGE ---
	store.UpdateJobStatus(jobID, "exporting")

	outName := outputFileName(spec)
	outPath, err := outputs.OutputFilePath(jobID, outName)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := dataset.WriteAdExport(outPath, result.Records); err != nil {
		return fmt.Errorf("write updated export: %w", err)
	}
	recordOutputFile(jobID, outName, outPath, outputs)
	fmt.Printf("💾 Updated export written: %s\n", outPath)

	logPath, err := outputs.OutputFilePath(jobID, LogFileName)
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	if err := dataset.WriteLog(logPath, result.LogLines); err != nil {
		return fmt.Errorf("write processing log: %w", err)
	}
	recordOutputFile(jobID, LogFileName, logPath, outputs)

	store.UpdateJobStatus(jobID, "completed")
	fmt.Printf("🏁 Job %s completed in %v\n", jobID, time.Since(start))
	return nil
}

// outputFileName picks the updated export's file name: explicit output rule
// first, otherwise a default matching the input format.
func outputFileName(spec model.UpdateJobSpec) string {
	if spec.Output != nil && spec.Output.File != "" {
		return filepath.Base(spec.Output.File)
	}
	return "updated_tiktok_export" + dataset.DefaultOutputExt(spec.Export.URL)
}

func recordOutputFile(jobID, name, path string, outputs *utils.OutputManager) {
	size, err := outputs.FileSize(path)
	if err != nil {
		fmt.Printf("❌ Failed to stat output file %s: %v\n", path, err)
	}
	if err := store.SaveOutputFile(jobID, name, path, outputs.FileType(name), size); err != nil {
		fmt.Printf("❌ Failed to record output file %s for job %s: %v\n", name, jobID, err)
	}
}
