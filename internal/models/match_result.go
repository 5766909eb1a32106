package models

// MatchResult is one normalized visual-search hit. Field defaults are applied
// during normalization, so a populated MatchResult never has empty fields.
type MatchResult struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
	Image  string `json:"image"`
}
