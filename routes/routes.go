package routes

import (
	"placewise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints of the search service.
func RegisterRoutes(r *gin.Engine, searchHandler *handlers.SearchHandler) {
	api := r.Group("/api")
	{
		api.POST("/search", searchHandler.Search)
		api.POST("/search/reset", searchHandler.ResetSession)
		api.GET("/health", searchHandler.Status)
	}
}
