package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management for
// job results (updated exports and processing logs).
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// JobOutputDir creates and returns the directory holding one job's outputs.
func (om *OutputManager) JobOutputDir(jobID string) (string, error) {
	jobDir := filepath.Join(om.BaseOutputDir, jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}
	return jobDir, nil
}

// OutputFilePath generates a full path for an output file of a job.
func (om *OutputManager) OutputFilePath(jobID, fileName string) (string, error) {
	jobDir, err := om.JobOutputDir(jobID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	cleanFileName := filepath.Base(fileName)

	return filepath.Join(jobDir, cleanFileName), nil
}

// DownloadURL generates a download URL for a job output file.
func (om *OutputManager) DownloadURL(jobID, fileName string) string {
	cleanFileName := filepath.Base(fileName)
	return fmt.Sprintf("/api/v1/download/%s/%s", jobID, cleanFileName)
}

// FileType determines the file type based on extension.
func (om *OutputManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".xlsx", ".xls":
		return "excel"
	case ".log", ".txt":
		return "text"
	default:
		return "unknown"
	}
}

// FileSize returns the size of a file in bytes.
func (om *OutputManager) FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}

// EnsureBaseDir ensures the base output directory exists.
func (om *OutputManager) EnsureBaseDir() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}
