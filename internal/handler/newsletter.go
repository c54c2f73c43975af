package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/inkpress/blog-backend/internal/server"
	"github.com/inkpress/blog-backend/internal/service"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// SubscribeRequest is the newsletter subscription payload.
// The email is checked for presence only; format is the provider's concern.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required"`
}

// Validate implements validation.Validatable.
func (r *SubscribeRequest) Validate() error {
	return validate.Struct(r)
}

// SubscribeResponse is the success body for a subscription.
type SubscribeResponse struct {
	Message string `json:"message"`
}

// NewsletterHandler serves the newsletter subscription endpoint.
type NewsletterHandler struct {
	Handler
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler constructs a NewsletterHandler.
func NewNewsletterHandler(s *server.Server, newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		Handler:           NewHandler(s),
		newsletterService: newsletterService,
	}
}

// Subscribe returns the route handler for POST /newslettersubscribe.
func (h *NewsletterHandler) Subscribe() echo.HandlerFunc {
	return Handle(h.Handler, h.subscribe, http.StatusOK, func() *SubscribeRequest {
		return &SubscribeRequest{}
	})
}

func (h *NewsletterHandler) subscribe(c echo.Context, req *SubscribeRequest) (*SubscribeResponse, error) {
	message, err := h.newsletterService.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}

	return &SubscribeResponse{Message: message}, nil
}
