package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// readCSV reads a CSV file from a local path or an http(s) URL and returns
// its header row and data rows. headerRow rows are skipped before the
// header, mirroring sheets that carry metadata above the real headers.
func readCSV(ctx context.Context, pathOrURL string, headerRow int) ([]string, [][]string, error) {
	var reader io.Reader
	if strings.HasPrefix(pathOrURL, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build CSV request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to GET CSV: %w", err)
		}
		defer resp.Body.Close()
		reader = resp.Body
	} else {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	for skip := 0; skip < headerRow; skip++ {
		if _, err := csvReader.Read(); err != nil {
			return nil, nil, fmt.Errorf("failed to skip CSV preamble: %w", err)
		}
	}

	headers, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		row, err := csvReader.Read()
		if err == io.EOF {
			return headers, rows, nil
		} else if err != nil {
			return nil, nil, fmt.Errorf("CSV read error: %w", err)
		}
		rows = append(rows, row)
	}
}
