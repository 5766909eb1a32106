package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/phambaophuc/guru-scan/internal/models"
	"github.com/phambaophuc/guru-scan/pkg/utils"
)

// stageUpload writes the incoming file to temporary local storage. The
// scanner owns the staged file from here on and deletes it on every path.
func (h *ScanHandler) stageUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.config.Storage.UploadPath, 0755); err != nil {
		return "", err
	}

	stagedPath := filepath.Join(h.config.Storage.UploadPath, utils.GenerateStagingName(file.Filename))
	if err := c.SaveUploadedFile(file, stagedPath); err != nil {
		return "", err
	}

	return stagedPath, nil
}

func (h *ScanHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ScanHandler) serviceStatus(c *gin.Context) map[string]string {
	services := make(map[string]string)

	// History dir must be writable for scans to persist.
	if err := os.MkdirAll(h.config.History.Dir, 0755); err != nil {
		services["history"] = "unhealthy: " + err.Error()
	} else {
		services["history"] = "healthy"
	}

	if h.cache == nil {
		services["redis"] = "not configured"
	} else if err := h.cache.Ping(c.Request.Context()); err != nil {
		services["redis"] = "unhealthy: " + err.Error()
	} else {
		services["redis"] = "healthy"
	}

	return services
}
