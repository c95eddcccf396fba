package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valuai/valuai/internal/model"
	"github.com/valuai/valuai/internal/service"
	"github.com/valuai/valuai/internal/validation"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

type ValuationHandler struct {
	valuationService *service.ValuationService
	debug            bool
}

func NewValuationHandler(svc *service.ValuationService, debug bool) *ValuationHandler {
	return &ValuationHandler{
		valuationService: svc,
		debug:            debug,
	}
}

func (h *ValuationHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ValuAI API is running",
		"version": Version,
	})
}

func (h *ValuationHandler) Health(c *gin.Context) {
	database := "disconnected"
	if h.valuationService.HealthCheck(c.Request.Context()) {
		database = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ValuationHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"options": gin.H{
			"industries":    model.Industries,
			"regions":       model.Regions,
			"exit_statuses": model.ExitStatuses,
		},
	})
}

func (h *ValuationHandler) Estimate(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "request body must be a JSON object",
		})
		return
	}

	req, verr := validation.Normalize(raw)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": verr.Message,
		})
		return
	}

	result, err := h.valuationService.Estimate(c.Request.Context(), req)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Valuation estimated successfully",
		"data": gin.H{
			"valuation": result.Valuation,
			"query_id":  result.QueryID,
			"input":     result.Input,
		},
	})
}

func (h *ValuationHandler) History(c *gin.Context) {
	limit := intQuery(c, "limit", service.DefaultHistoryLimit)
	page := intQuery(c, "page", 1)

	history, err := h.valuationService.History(c.Request.Context(), limit, page)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history.Records,
		"pagination": gin.H{
			"page":  history.Page,
			"limit": history.Limit,
			"total": history.Total,
			"pages": history.Pages,
		},
	})
}

func (h *ValuationHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "route not found",
	})
}

// internalError hides detail unless debug mode is on.
func (h *ValuationHandler) internalError(c *gin.Context, err error) {
	message := "Internal server error"
	if h.debug {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
	})
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
