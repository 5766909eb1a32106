package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/internal/models"
	"github.com/phambaophuc/guru-scan/internal/services/cache"
	"github.com/phambaophuc/guru-scan/internal/services/history"
	"github.com/phambaophuc/guru-scan/internal/services/scanner"
)

const (
	imageParamKey       = "image"
	defaultHistoryLimit = 20
)

type ScanHandler struct {
	scanner *scanner.Service
	history *history.Store
	cache   *cache.ResultCache // may be nil
	logger  *zap.Logger
	config  *config.Config
}

func NewScanHandler(
	scanner *scanner.Service,
	history *history.Store,
	cache *cache.ResultCache,
	logger *zap.Logger,
	config *config.Config,
) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		history: history,
		cache:   cache,
		logger:  logger,
		config:  config,
	}
}

// Scan handles POST /guru-scan: stage the upload, run the pipeline, respond.
func (h *ScanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}

	stagedPath, err := h.stageUpload(c, file)
	if err != nil {
		h.logger.Error("Failed to stage upload", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to stage uploaded file")
		return
	}

	outcome, err := h.scanner.Scan(c.Request.Context(), stagedPath, file.Filename)
	if err != nil {
		h.logger.Error("Scan failed",
			zap.String("filename", file.Filename),
			zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ScanResponse{
		Success:      true,
		Results:      outcome.Results,
		TotalMatches: outcome.TotalMatches,
		DemoData:     outcome.DemoData,
	})
}

// History handles GET /api/v1/scans.
func (h *ScanHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	scans, err := h.history.Recent(limit)
	if err != nil {
		h.logger.Error("Failed to read scan history", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to read scan history")
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Success: true,
		Scans:   scans,
		Total:   len(scans),
	})
}

// HealthCheck handles GET /api/v1/health.
func (h *ScanHandler) HealthCheck(c *gin.Context) {
	services := h.serviceStatus(c)

	overall := "healthy"
	statusCode := http.StatusOK
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			overall = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, gin.H{
		"success":   overall == "healthy",
		"status":    overall,
		"timestamp": time.Now(),
		"services":  services,
	})
}
