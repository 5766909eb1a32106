package visualsearch

import "github.com/phambaophuc/guru-scan/internal/models"

// DemoResults returns the fixed fallback set served whenever the provider
// yields nothing usable. Returned as a fresh slice so callers can't mutate
// the canonical entries.
func DemoResults() []models.MatchResult {
	return []models.MatchResult{
		{
			Title:  "Facebook Guru Profile",
			Source: "Facebook",
			Link:   "https://www.facebook.com/",
			Image:  "https://via.placeholder.com/150?text=Facebook",
		},
		{
			Title:  "Twitter Guru Post",
			Source: "Twitter",
			Link:   "https://twitter.com/",
			Image:  "https://via.placeholder.com/150?text=Twitter",
		},
	}
}
