package model

// Source points at an input file for a job: the TikTok export or a DCM tag
// file. URL may be a local path or an http(s) URL.
type Source struct {
	Type string `json:"type"` // csv, xlsx
	URL  string `json:"url"`
}

// Output defines where the updated export is written. The extension picks
// the format (CSV when unknown).
type Output struct {
	File string `json:"file"` // e.g., updated_export.xlsx
}

// UpdateJobSpec is the payload for POST /api/v1/jobs.
type UpdateJobSpec struct {
	Export     Source   `json:"export"`               // the TikTok export to correct
	Tags       []Source `json:"tags"`                 // tag files, in priority order
	Output     *Output  `json:"output,omitempty"`     // optional output rules
	Workers    int      `json:"workers"`              // processing workers, 0 = default
	JobTimeout string   `json:"jobTimeout,omitempty"` // e.g., "5m"
}
