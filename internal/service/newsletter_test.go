package service

import (
	"context"
	"testing"
	"time"

	"github.com/inkpress/blog-backend/internal/errs"
	"github.com/inkpress/blog-backend/internal/lib/newsletter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	calls int
	email string
	err   error
}

func (s *stubSender) AddContact(ctx context.Context, creds newsletter.Credentials, email string) error {
	s.calls++
	s.email = email
	return s.err
}

func newTestNewsletterService(sender newsletter.Sender, creds newsletter.CredentialsProvider) *NewsletterService {
	nop := zerolog.Nop()
	return &NewsletterService{
		creds:          creds,
		sender:         sender,
		logger:         &nop,
		credentialWait: 50 * time.Millisecond,
	}
}

func TestNewsletterSubscribe_Success(t *testing.T) {
	sender := &stubSender{}
	svc := newTestNewsletterService(sender, newsletter.NewStaticProvider("key", "audience"))

	msg, err := svc.Subscribe(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Successfully subscribed!", msg)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "user@example.com", sender.email)
}

func TestNewsletterSubscribe_EmptyEmail(t *testing.T) {
	sender := &stubSender{}
	svc := newTestNewsletterService(sender, newsletter.NewStaticProvider("key", "audience"))

	_, err := svc.Subscribe(context.Background(), "")
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)

	// Rejected before any provider call.
	assert.Equal(t, 0, sender.calls)
}

func TestNewsletterSubscribe_ProviderRejection(t *testing.T) {
	sender := &stubSender{err: errors.New("audience does not exist: aud_123")}
	svc := newTestNewsletterService(sender, newsletter.NewStaticProvider("key", "audience"))

	_, err := svc.Subscribe(context.Background(), "user@example.com")
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, "Failed to subscribe. Please try again.", httpErr.Message)

	// The provider's error payload never reaches the caller.
	assert.NotContains(t, httpErr.Message, "aud_123")

	// One attempt per invocation, no retry.
	assert.Equal(t, 1, sender.calls)
}

func TestNewsletterSubscribe_CredentialsNotReady(t *testing.T) {
	sender := &stubSender{}

	// An unresolved gate simulates startup credential fetching still in
	// flight; the bounded wait expires and the request fails closed.
	svc := newTestNewsletterService(sender, newsletter.NewGateProvider())

	_, err := svc.Subscribe(context.Background(), "user@example.com")
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, "Failed to subscribe. Please try again.", httpErr.Message)

	assert.Equal(t, 0, sender.calls)
}
