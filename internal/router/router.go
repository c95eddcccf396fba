package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valuai/valuai/internal/handler"
)

type Config struct {
	ValuationHandler *handler.ValuationHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))

	router.GET("/", cfg.ValuationHandler.Root)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	registerValuationRoutes(api, cfg.ValuationHandler)

	router.NoRoute(cfg.ValuationHandler.NotFound)

	return router
}
