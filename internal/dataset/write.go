package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

// WriteAdExport writes the updated export to path. The extension picks the
// format: .xlsx/.xls produce a workbook with the ads on the Ads sheet,
// anything else produces CSV.
func WriteAdExport(path string, records []model.AdRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	header := append([]string(nil), RequiredExportColumns...)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CampaignName,
			rec.AdGroupName,
			rec.AdName,
			rec.ClickURL,
			rec.ImpressionTrackingURL,
		})
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return writeXLSX(path, ExportSheet, header, rows)
	default:
		return writeCSV(path, header, rows)
	}
}

// DefaultOutputExt mirrors the input file's format: workbooks stay xlsx,
// everything else becomes csv.
func DefaultOutputExt(inputPath string) string {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx", ".xls":
		return ".xlsx"
	default:
		return ".csv"
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return writer.Error()
}

// WriteLog writes the processing log as plain text, one line per entry.
func WriteLog(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
