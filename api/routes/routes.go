package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/api/handlers"
	"github.com/relokit/vault/api/middleware"
)

// SetupRoutes wires the API surface. Everything under /api/v1 requires a
// verified bearer token.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, jwtSecret []byte) {
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(jwtSecret))

	docs := v1.Group("/documents")
	{
		docs.GET("", h.Document.List)
		docs.POST("", h.Document.Upload)
		docs.GET("/:id/download", h.Document.Download)
		docs.DELETE("/:id", h.Document.Delete)
		docs.POST("/:id/classify", h.Document.Classify)
	}

	// Registered outside the documents group so the static segment cannot
	// collide with the :id wildcard in the routing tree.
	v1.POST("/export", h.Export.Export)

	reminders := v1.Group("/reminders")
	{
		reminders.GET("", h.Reminder.List)
		reminders.POST("/:id", h.Reminder.Action)
	}

	v1.GET("/profile", h.Profile.Get)
	v1.PUT("/profile", h.Profile.Update)

	v1.GET("/municipalities/:code", h.Municipality.Get)
}
