package service

import (
	"context"
	"time"

	"github.com/inkpress/blog-backend/internal/errs"
	"github.com/inkpress/blog-backend/internal/lib/newsletter"
	"github.com/inkpress/blog-backend/internal/server"
	"github.com/rs/zerolog"
)

// SubscribeSuccessMessage is returned to the client on a successful subscription.
const SubscribeSuccessMessage = "Successfully subscribed!"

// subscribeFailedMessage is the only failure detail clients ever see
// for provider, transport, or credential problems.
const subscribeFailedMessage = "Failed to subscribe. Please try again."

// NewsletterService is the subscription gateway: it validates the
// email is present, resolves provider credentials, issues a single
// provider call, and maps the outcome to a simplified result.
type NewsletterService struct {
	creds  newsletter.CredentialsProvider
	sender newsletter.Sender
	logger *zerolog.Logger

	// credentialWait bounds how long Subscribe waits for startup
	// credential resolution before failing the request.
	credentialWait time.Duration
}

// NewNewsletterService constructs the gateway from the application container.
func NewNewsletterService(s *server.Server) *NewsletterService {
	return &NewsletterService{
		creds:          s.NewsletterCreds,
		sender:         newsletter.NewResendSender(),
		logger:         s.Logger,
		credentialWait: time.Duration(s.Config.Newsletter.CredentialWaitSeconds) * time.Second,
	}
}

// Subscribe registers the email with the subscription provider.
//
// A missing email fails with a 400 before any network call. Provider
// rejections and transport failures both surface as the same generic
// 500; the provider's error payload is logged, never echoed to the
// caller. One attempt per invocation, no retry.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errs.NewBadRequestError("Email is required.", false, nil, nil)
	}

	credCtx, cancel := context.WithTimeout(ctx, s.credentialWait)
	defer cancel()

	creds, err := s.creds.Credentials(credCtx)
	if err != nil {
		s.logger.Error().Err(err).Msg("newsletter credentials unavailable")
		return "", errs.NewInternalServerError().WithMessage(subscribeFailedMessage)
	}

	if err := s.sender.AddContact(ctx, creds, email); err != nil {
		if newsletter.IsTransportError(err) {
			s.logger.Error().Err(err).Msg("newsletter provider unreachable")
		} else {
			// The provider's error payload is logged for diagnosis but
			// deliberately not included in the response.
			s.logger.Error().Err(err).Msg("newsletter provider rejected subscription")
		}
		return "", errs.NewInternalServerError().WithMessage(subscribeFailedMessage)
	}

	return SubscribeSuccessMessage, nil
}
