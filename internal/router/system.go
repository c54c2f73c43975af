package router

import (
	"github.com/inkpress/blog-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// business API, kept in a dedicated file.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by monitors/load balancers).
	r.GET("/status", h.Health.CheckHealth)
}
