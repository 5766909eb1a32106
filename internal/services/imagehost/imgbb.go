package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/phambaophuc/guru-scan/internal/config"
)

// Client uploads a local image file to a remote host and returns its public
// URL. Upload errors are the only fatal errors of the scan pipeline.
type Client interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// ImgBBClient uploads images to the ImgBB hosting API.
type ImgBBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewImgBBClient(cfg config.ImgBBConfig) *ImgBBClient {
	return &ImgBBClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload streams the file as multipart form content to ImgBB and returns the
// hosted URL. No retry and no fallback at this layer.
func (c *ImgBBClient) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staged file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read staged file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload to imgbb: %w", err)
	}
	defer resp.Body.Close()

	var parsed imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode imgbb response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("imgbb upload rejected: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("imgbb upload failed: status %d", resp.StatusCode)
	}

	if parsed.Data.URL == "" {
		return "", fmt.Errorf("imgbb response missing hosted url")
	}

	return parsed.Data.URL, nil
}
