package api

import (
	"Postwise/internal/api/middleware"
	"Postwise/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, accessLogIndex string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r, accessLogIndex)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			accountGroup := analyticsGroup.Group("/accounts/:account_id")
			{
				accountGroup.POST("/sync", group.AnalyticsHandler.SyncAccount)
				accountGroup.GET("/best-times", group.AnalyticsHandler.GetBestTimes)
				accountGroup.GET("/summary", group.AnalyticsHandler.GetSummary)
				accountGroup.GET("/insights", group.AnalyticsHandler.GetInsights)
			}

			// 需要 admin 角色
			adminGroup := analyticsGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("/sync", group.AnalyticsHandler.SyncAll)
			}
		}
	}

	return r
}
