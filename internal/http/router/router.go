package router

import (
	"github.com/gin-gonic/gin"

	"gatekeeper.app/api/common/ratelimit"
	"gatekeeper.app/api/internal/http/handler"
	"gatekeeper.app/api/internal/service"
)

type RouterConfig struct {
	Env                string
	AnalyzerConfigured bool
	SubmitLimiter      ratelimit.Limiter
	SubmitPerMinute    int
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":              "ok",
			"env":                 cfg.Env,
			"analyzer_configured": cfg.AnalyzerConfigured,
		})
	})

	v1 := router.Group("/api/v1")
	{
		ticketHandler := handler.NewTicketHandler(services.Tickets())
		TicketRouter(v1.Group("/tickets"), ticketHandler, cfg)
	}
}
