package fee

import (
	"transparency/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	fees := r.Group("/fees")

	fees.Use(middleware.AuthMiddleware())

	{
		fees.GET("", h.GetAll)
		fees.GET("/:id", h.GetByID)
	}
}
