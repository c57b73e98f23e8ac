package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// APIVersion is reported by the root status endpoint.
const APIVersion = "1.0.0"

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server and the available endpoints.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "API is running",
		"version": APIVersion,
		"endpoints": gin.H{
			"projects":     "/api/projects",
			"appointments": "/api/appointments",
			"health":       "/health",
		},
	})
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the storage backend is reachable.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func healthCheck(health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := health.CheckHealth(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
				Message: "storage unreachable",
				Error:   "StorageError",
			})
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

func registerHomeRoutes(r *gin.Engine, health portssvc.HealthSvc) {
	r.GET("/", getHome)
	r.GET("/health", healthCheck(health))
}
