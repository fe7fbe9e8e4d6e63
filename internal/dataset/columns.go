package dataset

import (
	"fmt"
	"strings"
)

// Column names used by TikTok export files.
const (
	ColCampaignName  = "Campaign Name"
	ColAdGroupName   = "Ad Group Name"
	ColAdName        = "Ad Name"
	ColClickURL      = "Click URL"
	ColImpressionURL = "Impression tracking URL"
)

// Additional column names used by DCM tag files.
const (
	ColPlacementName     = "Placement Name"
	ColClickTracker      = "Click Tracker"
	ColImpressionTracker = "Impression Tracker"
)

// RequiredExportColumns are the columns a TikTok export must carry.
var RequiredExportColumns = []string{
	ColCampaignName, ColAdGroupName, ColAdName, ColClickURL, ColImpressionURL,
}

// RequiredTagColumns are the columns a DCM tag file must carry.
var RequiredTagColumns = []string{
	ColCampaignName, ColPlacementName, ColAdName, ColClickTracker, ColImpressionTracker,
}

// table is a header-indexed view over raw rows. Missing cells read as "".
type table struct {
	index map[string]int
	rows  [][]string
}

func newTable(headers []string, rows [][]string) *table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = cleanHeader(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return &table{index: index, rows: rows}
}

// cleanHeader trims whitespace and strips stray quotes from a header cell.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

// value returns the named column of a row, or "" when the column is absent
// or the row is short.
func (t *table) value(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// requireColumns reports the required columns the table is missing.
func (t *table) requireColumns(required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
