package api

import (
	"net/http"

	summaryDelivery "meeting-notes-backend/internal/summary/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, summaryHandler *summaryDelivery.SummaryHandler, settingsHandler *SettingsHandler) {
	// Root paths kept for clients that call /parse-file etc. directly
	summaryHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		summaryHandler.RegisterRoutes(api)
		summaryHandler.RegisterSummaryRoutes(api)

		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.POST("/smtp/test", settingsHandler.TestSMTPConnection)
			settings.POST("/ollama/test", settingsHandler.TestOllamaConnection)
		}
	}
}
