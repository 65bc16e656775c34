package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/controllers/cms/analytics_controller"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")

	analytics.GET("/sales", analytics_controller.GetSalesAnalytics)
	analytics.GET("/products", analytics_controller.GetProductPerformance)
	analytics.GET("/customers", analytics_controller.GetCustomerBehavior)
	analytics.GET("/traffic", analytics_controller.GetTrafficEngagement)
	analytics.GET("/orders", analytics_controller.GetOrdersOverview)
	analytics.GET("/marketing", analytics_controller.GetMarketingPerformance)
	analytics.GET("/funnel", analytics_controller.GetFunnelAnalytics)
	analytics.GET("/page-visits-trend", analytics_controller.GetPageVisitsTrend)
	analytics.GET("/live-visitors-trend", analytics_controller.GetLiveVisitorsTrend)
	analytics.GET("/userflow", analytics_controller.GetUserFlow)
}
