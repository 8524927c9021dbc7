package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/heatmap-backend/usecases"
)

func NewServer(router *gin.Engine, conf Configuration, uc usecases.Usecases) *http.Server {
	addRoutes(router, conf, uc)

	// Add 5 seconds to the server timeout to gracefully handle the timeout in our code
	maxTimeout := conf.DefaultTimeout + 5*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: maxTimeout,
		ReadTimeout:  maxTimeout,
		IdleTimeout:  maxTimeout,
		Handler:      router,
	}
}
