package router

import (
	"github.com/gin-gonic/gin"

	"gatekeeper.app/api/internal/http/handler"
	"gatekeeper.app/api/internal/http/middleware"
)

// TicketRouter sets up ticket routes. Only Submit is rate limited; reads are
// not.
func TicketRouter(rg *gin.RouterGroup, h *handler.TicketHandler, cfg RouterConfig) {
	submit := rg.Group("")
	if cfg.SubmitLimiter != nil {
		submit.Use(middleware.RateLimit(cfg.SubmitLimiter, cfg.SubmitPerMinute))
	}
	submit.POST("", h.Submit)

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
