package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAdExportCSV(t *testing.T) {
	path := writeTempFile(t, "export.csv",
		"Campaign Name,Ad Group Name,Ad Name,Click URL,Impression tracking URL\n"+
			"A,B,C,http://site.com,\n"+
			"X,Y,Z\n") // short row: missing cells read as ""

	ads, err := LoadAdExport(context.Background(), model.Source{Type: "csv", URL: path})
	require.NoError(t, err)
	require.Len(t, ads, 2)

	assert.Equal(t, model.AdRecord{
		CampaignName: "A", AdGroupName: "B", AdName: "C", ClickURL: "http://site.com",
	}, ads[0])
	assert.Equal(t, model.AdRecord{CampaignName: "X", AdGroupName: "Y", AdName: "Z"}, ads[1])
}

func TestLoadAdExportMissingColumns(t *testing.T) {
	path := writeTempFile(t, "export.csv",
		"Campaign Name,Ad Name\nA,C\n")

	_, err := LoadAdExport(context.Background(), model.Source{Type: "csv", URL: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "Ad Group Name")
	assert.Contains(t, err.Error(), "Click URL")
}

func TestLoadTagFileCSV(t *testing.T) {
	path := writeTempFile(t, "tags.csv",
		"Campaign Name,Placement Name,Ad Name,Click Tracker,Impression Tracker\n"+
			`A,B,C,PRE|,"<ins src=""http://imp.com""></ins>"`+"\n")

	tagFile, err := LoadTagFile(context.Background(), model.Source{Type: "csv", URL: path})
	require.NoError(t, err)
	assert.Equal(t, "tags.csv", tagFile.Name)
	require.Len(t, tagFile.Records, 1)
	assert.Equal(t, "PRE|", tagFile.Records[0].ClickTracker)
	assert.Equal(t, `<ins src="http://imp.com"></ins>`, tagFile.Records[0].ImpressionTracker)
}

func TestWriteAndReloadExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updated.xlsx")
	records := []model.AdRecord{
		{CampaignName: "A", AdGroupName: "B", AdName: "C", ClickURL: "http://site.com?x=1", ImpressionTrackingURL: "http://imp.com"},
	}

	require.NoError(t, WriteAdExport(path, records))

	ads, err := LoadAdExport(context.Background(), model.Source{URL: path})
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, records[0], ads[0])
}

func TestLoadTagFileXLSXHeadersOnRowEleven(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// DCM workbooks carry ten metadata rows above the headers.
	require.NoError(t, f.SetCellValue(sheet, "A1", "Campaign Manager Tag Export"))
	header := []interface{}{"Campaign Name", "Placement Name", "Ad Name", "Click Tracker", "Impression Tracker"}
	require.NoError(t, f.SetSheetRow(sheet, "A11", &header))
	row := []interface{}{"A", "B", "C", "PRE|", `"http://imp.com/track"`}
	require.NoError(t, f.SetSheetRow(sheet, "A12", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tagFile, err := LoadTagFile(context.Background(), model.Source{URL: path})
	require.NoError(t, err)
	require.Len(t, tagFile.Records, 1)
	assert.Equal(t, model.TagRecord{
		CampaignName:      "A",
		PlacementName:     "B",
		AdName:            "C",
		ClickTracker:      "PRE|",
		ImpressionTracker: `"http://imp.com/track"`,
	}, tagFile.Records[0])
}

func TestWriteAdExportCSVDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updated.csv")
	records := []model.AdRecord{
		{CampaignName: "A", AdGroupName: "B", AdName: "C"},
	}

	require.NoError(t, WriteAdExport(path, records))

	ads, err := LoadAdExport(context.Background(), model.Source{URL: path})
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, records[0], ads[0])
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "Campaign Name", cleanHeader(`  "Campaign Name"  `))
}

func TestDefaultOutputExt(t *testing.T) {
	assert.Equal(t, ".xlsx", DefaultOutputExt("export.XLSX"))
	assert.Equal(t, ".xlsx", DefaultOutputExt("export.xls"))
	assert.Equal(t, ".csv", DefaultOutputExt("export.csv"))
	assert.Equal(t, ".csv", DefaultOutputExt("export"))
}
