package report

import (
	"transparency/internal/domain"
	"transparency/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")

	reports.Use(middleware.AuthMiddleware())

	{
		reports.GET(
			"/remittance-status/:feeId",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetPagedRemittanceStatus,
		)
		reports.GET(
			"/remittance-status/:feeId/full",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetFullRemittanceReport,
		)
	}
}
