package handler

import (
	"github.com/inkpress/blog-backend/internal/server"
	"github.com/inkpress/blog-backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers, keeping
// router setup to a single wired object.
type Handlers struct {
	Blog       *BlogHandler       // Blog serves the blog and blog-detail CRUD endpoints.
	Newsletter *NewsletterHandler // Newsletter serves the subscription endpoint.
	Health     *HealthHandler     // Health serves the service health endpoint.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Blog:       NewBlogHandler(s, services.Blog),
		Newsletter: NewNewsletterHandler(s, services.Newsletter),
		Health:     NewHealthHandler(s),
	}
}
