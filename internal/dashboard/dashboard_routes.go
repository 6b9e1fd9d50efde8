package dashboard

import (
	"transparency/internal/domain"
	"transparency/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	dashboards := r.Group("/dashboard")

	dashboards.Use(middleware.AuthMiddleware())

	{
		dashboards.GET(
			"/summary",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetAdminSummary,
		)
		dashboards.GET(
			"/fee-utilization",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetFeeUtilization,
		)
		dashboards.GET(
			"/my-class",
			middleware.RoleMiddleware(domain.RoleClassTreasurer),
			h.GetClassTreasurerSummary,
		)
	}
}
