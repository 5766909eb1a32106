package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/http/handlers"
	"github.com/phambaophuc/guru-scan/internal/http/middleware"
)

type Router struct {
	scanHandler *handlers.ScanHandler
	logger      *zap.Logger
}

func NewRouter(
	scanHandler *handlers.ScanHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		scanHandler: scanHandler,
		logger:      logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	router.POST("/guru-scan", r.scanHandler.Scan)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.scanHandler.HealthCheck)
		v1.GET("/scans", r.scanHandler.History)
	}

	// The presentation page is served separately; this just confirms the
	// API is up.
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Guru Scan API is running",
		})
	})

	return router
}
