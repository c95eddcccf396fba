package router

import (
	"github.com/gin-gonic/gin"

	"github.com/valuai/valuai/internal/handler"
)

func registerValuationRoutes(router *gin.RouterGroup, valuationHandler *handler.ValuationHandler) {
	router.GET("/health", valuationHandler.Health)
	router.GET("/options", valuationHandler.Options)
	router.POST("/estimate", valuationHandler.Estimate)
	router.GET("/history", valuationHandler.History)
}
