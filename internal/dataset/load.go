package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

// ExportSheet is the sheet of a TikTok export workbook that holds the ads.
const ExportSheet = "Ads"

// tagHeaderRow is the zero-based header row of a DCM tag sheet: DCM puts
// ten metadata rows above the real headers, so headers are on row 11.
const tagHeaderRow = 10

// LoadAdExport loads a TikTok export and validates its required columns.
// Missing cells are normalized to empty strings.
func LoadAdExport(ctx context.Context, src model.Source) ([]model.AdRecord, error) {
	t, err := loadTable(ctx, src, ExportSheet, 0)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(RequiredExportColumns); err != nil {
		return nil, fmt.Errorf("export file %s: %w", src.URL, err)
	}

	ads := make([]model.AdRecord, 0, len(t.rows))
	for _, row := range t.rows {
		ads = append(ads, model.AdRecord{
			CampaignName:          t.value(row, ColCampaignName),
			AdGroupName:           t.value(row, ColAdGroupName),
			AdName:                t.value(row, ColAdName),
			ClickURL:              t.value(row, ColClickURL),
			ImpressionTrackingURL: t.value(row, ColImpressionURL),
		})
	}
	return ads, nil
}

// LoadTagFile loads one DCM tag file and validates its required columns.
func LoadTagFile(ctx context.Context, src model.Source) (model.TagFile, error) {
	headerRow := 0
	if sourceType(src) == "xlsx" {
		headerRow = tagHeaderRow
	}
	t, err := loadTable(ctx, src, "", headerRow)
	if err != nil {
		return model.TagFile{}, err
	}
	if err := t.requireColumns(RequiredTagColumns); err != nil {
		return model.TagFile{}, fmt.Errorf("tag file %s: %w", src.URL, err)
	}

	records := make([]model.TagRecord, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, model.TagRecord{
			CampaignName:      t.value(row, ColCampaignName),
			PlacementName:     t.value(row, ColPlacementName),
			AdName:            t.value(row, ColAdName),
			ClickTracker:      t.value(row, ColClickTracker),
			ImpressionTracker: t.value(row, ColImpressionTracker),
		})
	}
	return model.TagFile{Name: filepath.Base(src.URL), Records: records}, nil
}

func loadTable(ctx context.Context, src model.Source, sheet string, headerRow int) (*table, error) {
	var (
		headers []string
		rows    [][]string
		err     error
	)
	switch sourceType(src) {
	case "xlsx":
		headers, rows, err = readXLSX(ctx, src.URL, sheet, headerRow)
	case "csv":
		headers, rows, err = readCSV(ctx, src.URL, headerRow)
	default:
		return nil, fmt.Errorf("unknown source type: %s", src.Type)
	}
	if err != nil {
		return nil, err
	}
	return newTable(headers, rows), nil
}

// sourceType resolves the type of a source, falling back to the file
// extension when the type field is empty.
func sourceType(src model.Source) string {
	switch strings.ToLower(src.Type) {
	case "xlsx", "xls", "excel":
		return "xlsx"
	case "csv":
		return "csv"
	case "":
		switch strings.ToLower(filepath.Ext(src.URL)) {
		case ".xlsx", ".xls":
			return "xlsx"
		default:
			return "csv"
		}
	default:
		return strings.ToLower(src.Type)
	}
}
