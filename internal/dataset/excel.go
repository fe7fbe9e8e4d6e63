package dataset

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads one sheet of a workbook from a local path or an http(s)
// URL. sheet "" means the first sheet. headerRow rows are skipped before
// the header row, matching DCM workbooks whose headers sit below a block
// of metadata rows.
func readXLSX(ctx context.Context, pathOrURL, sheet string, headerRow int) ([]string, [][]string, error) {
	var (
		f   *excelize.File
		err error
	)
	if strings.HasPrefix(pathOrURL, "http") {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if reqErr != nil {
			return nil, nil, fmt.Errorf("failed to build workbook request: %w", reqErr)
		}
		resp, respErr := http.DefaultClient.Do(req)
		if respErr != nil {
			return nil, nil, fmt.Errorf("failed to GET workbook: %w", respErr)
		}
		defer resp.Body.Close()
		f, err = excelize.OpenReader(resp.Body)
	} else {
		f, err = excelize.OpenFile(pathOrURL)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook %s has no sheets", pathOrURL)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) <= headerRow {
		return nil, nil, fmt.Errorf("sheet %q has no header row (row %d)", sheet, headerRow+1)
	}

	return rows[headerRow], rows[headerRow+1:], nil
}

// writeXLSX writes records to a new workbook under the given sheet name.
func writeXLSX(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
