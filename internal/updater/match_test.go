package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

func tagRow(campaign, placement, ad, clickTracker string) model.TagRecord {
	return model.TagRecord{
		CampaignName:  campaign,
		PlacementName: placement,
		AdName:        ad,
		ClickTracker:  clickTracker,
	}
}

func adRow(campaign, adGroup, ad string) model.AdRecord {
	return model.AdRecord{CampaignName: campaign, AdGroupName: adGroup, AdName: ad}
}

func TestFindMatchTrimsKeys(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Name: "tags.xlsx", Records: []model.TagRecord{tagRow(" A ", "B", " C ", "PRE|")}},
	})

	got := idx.FindMatch(adRow("A", " B ", "C"))
	require.NotNil(t, got)
	assert.Equal(t, "PRE|", got.ClickTracker)
}

func TestFindMatchIsCaseSensitive(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Records: []model.TagRecord{tagRow("a", "b", "c", "PRE|")}},
	})

	assert.Nil(t, idx.FindMatch(adRow("A", "b", "c")))
	assert.NotNil(t, idx.FindMatch(adRow("a", "b", "c")))
}

func TestFindMatchFirstFileWins(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Name: "first.xlsx", Records: []model.TagRecord{tagRow("A", "B", "C", "first|")}},
		{Name: "second.xlsx", Records: []model.TagRecord{tagRow("A", "B", "C", "second|")}},
	})

	got := idx.FindMatch(adRow("A", "B", "C"))
	require.NotNil(t, got)
	assert.Equal(t, "first|", got.ClickTracker)
}

func TestFindMatchFirstRowWinsWithinFile(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Records: []model.TagRecord{
			tagRow("A", "B", "C", "row1|"),
			tagRow("A", "B", "C", "row2|"),
		}},
	})

	got := idx.FindMatch(adRow("A", "B", "C"))
	require.NotNil(t, got)
	assert.Equal(t, "row1|", got.ClickTracker)
}

func TestFindMatchEmptyKeysCompareAsEmpty(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Records: []model.TagRecord{tagRow("", "  ", "", "PRE|")}},
	})

	got := idx.FindMatch(adRow("", "", " "))
	require.NotNil(t, got)
	assert.Equal(t, "PRE|", got.ClickTracker)
}

func TestFindMatchNoMatch(t *testing.T) {
	idx := BuildTagIndex([]model.TagFile{
		{Records: []model.TagRecord{tagRow("A", "B", "C", "")}},
	})

	assert.Nil(t, idx.FindMatch(adRow("A", "B", "D")))
	assert.Equal(t, 1, idx.Len())
}
