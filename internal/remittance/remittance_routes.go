package remittance

import (
	"transparency/internal/domain"
	"transparency/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	remittances := r.Group("/remittances")

	remittances.Use(middleware.AuthMiddleware())

	{
		remittances.POST(
			"",
			middleware.RoleMiddleware(domain.RoleClassTreasurer),
			middleware.ExtractAccountID(),
			middleware.RateLimitByAccount(rate.Limit(1), 5),
			middleware.Idempotency(rdb),
			h.Submit,
		)
		remittances.POST(
			"/:id/review",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			middleware.ExtractAccountID(),
			h.Review,
		)
		remittances.GET(
			"",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetAll,
		)
		remittances.GET(
			"/:id",
			middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleOrgTreasurer),
			h.GetByID,
		)
	}
}
