package model

// AdRecord is a single row of a TikTok ads export. ClickURL and
// ImpressionTrackingURL are rewritten in place; the other fields are the
// identity of the row and never change.
type AdRecord struct {
	CampaignName          string `json:"campaignName"`
	AdGroupName           string `json:"adGroupName"`
	AdName                string `json:"adName"`
	ClickURL              string `json:"clickUrl"`
	ImpressionTrackingURL string `json:"impressionTrackingUrl"`
}

// TagRecord is a single row of a DCM tag file. Read-only once loaded.
type TagRecord struct {
	CampaignName      string `json:"campaignName"`
	PlacementName     string `json:"placementName"`
	AdName            string `json:"adName"`
	ClickTracker      string `json:"clickTracker"`
	ImpressionTracker string `json:"impressionTracker"`
}

// TagFile is an ordered tag dataset. When several tag files are supplied
// they are searched in the order given.
type TagFile struct {
	Name    string      `json:"name"`
	Records []TagRecord `json:"records"`
}

// Summary holds the counters for one processing pass.
type Summary struct {
	TotalRows            int `json:"total_rows"`
	MatchesFound         int `json:"matches_found"`
	ClickURLUpdates      int `json:"click_url_updates"`
	ImpressionURLUpdates int `json:"impression_url_updates"`
}

// ProcessResult is the outcome of processing one export against its tag
// files: the rewritten rows, the human-readable log, and the counters.
type ProcessResult struct {
	Records  []AdRecord `json:"records"`
	LogLines []string   `json:"log_lines"`
	Summary  Summary    `json:"summary"`
}
