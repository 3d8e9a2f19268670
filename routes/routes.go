package routes

import (
	"github.com/gin-gonic/gin"
	"saasmetrics/backend/config"
	"saasmetrics/backend/controllers"
)

func Register(r *gin.Engine, cfg config.Config) {
	r.GET("/health", controllers.Health())

	api := r.Group("/api")
	{
		api.GET("/health", controllers.Health())

		users := api.Group("/users")
		users.GET("", controllers.ListUsers(cfg))
		users.GET("/stats/summary", controllers.UserStatsSummary())
		users.GET("/:id", controllers.GetUser())

		revenue := api.Group("/revenue")
		revenue.GET("", controllers.ListRevenue(cfg))
		revenue.GET("/stats/summary", controllers.RevenueStatsSummary())
		revenue.GET("/stats/monthly", controllers.RevenueStatsMonthly())

		usage := api.Group("/usage")
		usage.GET("", controllers.ListUsage(cfg))
		usage.GET("/stats/summary", controllers.UsageStatsSummary())
		usage.GET("/stats/features", controllers.UsageStatsFeatures())

		marketing := api.Group("/marketing")
		marketing.GET("", controllers.ListMarketing(cfg))
		marketing.GET("/stats/summary", controllers.MarketingStatsSummary())
		marketing.GET("/stats/campaigns", controllers.MarketingStatsCampaigns())

		dashboard := api.Group("/dashboard")
		dashboard.GET("/kpis", controllers.KPIs())
		dashboard.GET("/user-growth", controllers.UserGrowth())
		dashboard.GET("/revenue-trends", controllers.RevenueTrends())
		dashboard.GET("/acquisition-funnel", controllers.AcquisitionFunnel())
		dashboard.GET("/churn-cohorts", controllers.ChurnCohorts())
		dashboard.GET("/feature-usage", controllers.FeatureUsage())
		dashboard.GET("/user-locations", controllers.UserLocations())
	}
}
