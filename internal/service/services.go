package service

import (
	"github.com/inkpress/blog-backend/internal/server"
)

// Services is a container that groups all business services.
type Services struct {
	Blog       *BlogService
	Newsletter *NewsletterService
}

// NewServices constructs the service container from the application container.
func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		Blog:       NewBlogService(s),
		Newsletter: NewNewsletterService(s),
	}, nil
}
