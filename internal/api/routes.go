package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "castnotes"

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, handler *Handler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	})

	e.POST("/pdf-to-audio", handler.PDFToAudio)
	e.POST("/transcribe-and-notes", handler.TranscribeAndNotes)
}
