package updater

import (
	"strings"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

// matchKey is the join key between an export row and a tag row: campaign
// name, placement name (the ad group name on the TikTok side) and ad name,
// all trimmed. Comparison is exact and case-sensitive.
type matchKey struct {
	Campaign  string
	Placement string
	Ad        string
}

func keyFor(campaign, placement, ad string) matchKey {
	return matchKey{
		Campaign:  strings.TrimSpace(campaign),
		Placement: strings.TrimSpace(placement),
		Ad:        strings.TrimSpace(ad),
	}
}

// TagIndex is a lookup built over one or more tag files. Rows are inserted
// in file order and a key is only ever inserted once, so a lookup returns
// the first matching row of the first file that has it — the same row a
// linear scan across the files would find.
type TagIndex struct {
	byKey map[matchKey]*model.TagRecord
}

// BuildTagIndex indexes all tag files in the supplied priority order.
func BuildTagIndex(tagFiles []model.TagFile) *TagIndex {
	idx := &TagIndex{byKey: make(map[matchKey]*model.TagRecord)}
	for f := range tagFiles {
		records := tagFiles[f].Records
		for r := range records {
			rec := &records[r]
			key := keyFor(rec.CampaignName, rec.PlacementName, rec.AdName)
			if _, exists := idx.byKey[key]; !exists {
				idx.byKey[key] = rec
			}
		}
	}
	return idx
}

// FindMatch returns the tag row matching the given export row, or nil when
// no tag file has one.
func (idx *TagIndex) FindMatch(ad model.AdRecord) *model.TagRecord {
	return idx.byKey[keyFor(ad.CampaignName, ad.AdGroupName, ad.AdName)]
}

// Len returns the number of distinct keys in the index.
func (idx *TagIndex) Len() int {
	return len(idx.byKey)
}
