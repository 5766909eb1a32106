package visualsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/internal/models"
)

// Client resolves a hosted image URL into normalized visual matches via the
// SerpApi Google Lens endpoint. Search never fails: any upstream problem is
// absorbed and replaced with the demo result set, so callers always get a
// non-empty list.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.SerpApiConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type lensResponse struct {
	VisualMatches []rawMatch `json:"visual_matches"`
}

type rawMatch struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
	Image     string `json:"image"`
}

// Search returns normalized matches for the image at imageURL. The second
// return value reports whether the demo fallback was used.
func (c *Client) Search(ctx context.Context, imageURL string) ([]models.MatchResult, bool) {
	results, err := c.fetch(ctx, imageURL)
	if err != nil {
		c.logger.Warn("Visual search failed, serving demo results",
			zap.String("image_url", imageURL),
			zap.Error(err))
		return DemoResults(), true
	}

	if len(results) == 0 {
		c.logger.Info("Visual search returned no matches, serving demo results",
			zap.String("image_url", imageURL))
		return DemoResults(), true
	}

	return results, false
}

func (c *Client) fetch(ctx context.Context, imageURL string) ([]models.MatchResult, error) {
	params := url.Values{}
	params.Set("engine", "google_lens")
	params.Set("url", imageURL)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query visual search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("visual search returned status %d", resp.StatusCode)
	}

	var parsed lensResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return Normalize(parsed.VisualMatches), nil
}
