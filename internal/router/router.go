// Package router initializes the HTTP router (using echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/inkpress/blog-backend/internal/handler"
	mw "github.com/inkpress/blog-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the echo instance: global middleware in order (recovery,
// secure headers, CORS, request id, request-scoped logger, request
// logging), the global error handler, and all route groups.
func New(m *mw.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		mw.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
	)

	registerSystemRoutes(e, h)
	registerBlogRoutes(e, h)

	return e
}
