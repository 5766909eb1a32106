package models

// ScanResponse is the success payload of POST /guru-scan. DemoData reports
// whether the results are the fixed fallback set rather than real matches.
type ScanResponse struct {
	Success      bool          `json:"success"`
	Results      []MatchResult `json:"results"`
	TotalMatches int           `json:"total_matches"`
	DemoData     bool          `json:"demo_data"`
}

// ErrorResponse is returned whenever a request fails.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HistoryResponse lists recent scans, newest first.
type HistoryResponse struct {
	Success bool         `json:"success"`
	Scans   []ScanRecord `json:"scans"`
	Total   int          `json:"total"`
}
