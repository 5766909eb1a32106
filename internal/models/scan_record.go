package models

import "time"

// ScanRecord is the durable artifact describing one completed scan. It is
// written once and never mutated: a pretty snapshot inside the scan's own
// folder and a compact line in the shared history log.
type ScanRecord struct {
	ID                int64         `json:"id"`
	CreatedAt         string        `json:"created_at"`
	OriginalImagePath string        `json:"original_image_path"`
	ImgBBURL          string        `json:"imgbb_url"`
	TotalMatches      int           `json:"total_matches"`
	Results           []MatchResult `json:"results"`
}

// NewScanRecord builds a record for the given scan id. CreatedAt is derived
// from the id itself so the two can never disagree.
func NewScanRecord(id int64, hostedURL string, results []MatchResult) *ScanRecord {
	return &ScanRecord{
		ID:           id,
		CreatedAt:    time.UnixMilli(id).UTC().Format(time.RFC3339),
		ImgBBURL:     hostedURL,
		TotalMatches: len(results),
		Results:      results,
	}
}
