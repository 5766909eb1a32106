package imagehost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/pkg/utils"
)

// SupabaseClient is an alternative image-host backend for deployments that
// keep scans in their own Supabase bucket instead of ImgBB.
type SupabaseClient struct {
	sbClient *storage_go.Client
	bucket   string
}

func NewSupabaseClient(cfg config.SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{
		sbClient: storage_go.NewClient(cfg.URL+"/storage/v1", cfg.KEY, nil),
		bucket:   cfg.BUCKET,
	}
}

func (c *SupabaseClient) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staged file: %w", err)
	}
	defer file.Close()

	key := utils.GenerateStorageKey(filepath.Base(localPath))

	if _, err := c.sbClient.UploadFile(c.bucket, key, file); err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := c.sbClient.GetPublicUrl(c.bucket, key)
	return publicURL.SignedURL, nil
}
