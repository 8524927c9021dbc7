package api

import (
	"context"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/heatmap-backend/usecases"
)

const defaultMaxUploadSizeMb = 20

// timeoutMiddleware bounds the request context, including the storage retries it triggers.
func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if duration <= 0 {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	maxUploadSizeMb := conf.MaxUploadSizeMb
	if maxUploadSizeMb <= 0 {
		maxUploadSizeMb = defaultMaxUploadSizeMb
	}

	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/health", handleHealth(uc))

	router := r.Group("/", timeoutMiddleware(conf.DefaultTimeout))

	router.POST("/upload", limits.RequestSizeLimiter(maxUploadSizeMb*1024*1024), handleUploadFile(uc))
	router.GET("/csv-files", handleListFiles(uc))
	router.GET("/files", handleListFilesWithSheets(uc))
	router.GET("/sheets/:filename", handleListSheets(uc))
	router.GET("/csv/:filename", handleGetFileContent(uc))
	router.DELETE("/csv/:filename", handleDeleteFile(uc))
	router.GET("/heatmap/:filename", handleGetHeatmap(uc))
}
