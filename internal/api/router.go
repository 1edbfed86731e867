package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trajectory-classifier/internal/config"
	"github.com/jengzang/trajectory-classifier/internal/handler"
	"github.com/jengzang/trajectory-classifier/internal/middleware"
	"github.com/jengzang/trajectory-classifier/internal/service"
)

// SetupRouter 设置路由. The returned stop function releases background
// middleware resources.
func SetupRouter(cfg *config.Config, svc *service.ClassificationService) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	stop := func() {}
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.Use(limiter.Handler())
		stop = limiter.Stop
	}

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trajectory classifier is running",
		})
	})

	h := handler.NewClassificationHandler(svc)

	api := r.Group("/api/v1")
	{
		api.GET("/summary", h.GetSummary)

		trajectories := api.Group("/trajectories")
		{
			trajectories.GET("", h.ListTrajectories)
			trajectories.GET("/:index/neighbors", h.GetNeighbors)
		}

		protected := api.Group("", middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/debug/classifications", h.GetClassifications)
			protected.POST("/reload", h.Reload)
		}
	}

	return r, stop
}
