package visualsearch

import "github.com/phambaophuc/guru-scan/internal/models"

// maxMatches caps how many provider matches survive normalization. Extras
// are silently dropped, not an error.
const maxMatches = 30

const (
	defaultTitle  = "Visual Match"
	defaultSource = "Web"
	defaultLink   = "#"
)

// Normalize maps raw provider matches into the stable result shape, applying
// field defaults and the 30-entry cap. Provider order is preserved.
func Normalize(raw []rawMatch) []models.MatchResult {
	if len(raw) > maxMatches {
		raw = raw[:maxMatches]
	}

	results := make([]models.MatchResult, 0, len(raw))
	for _, m := range raw {
		results = append(results, models.MatchResult{
			Title:  orDefault(m.Title, defaultTitle),
			Source: orDefault(m.Source, defaultSource),
			Link:   orDefault(m.Link, defaultLink),
			Image:  orDefault(m.Thumbnail, m.Image),
		})
	}
	return results
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
