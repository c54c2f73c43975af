// Package newsletter integrates with the email-marketing provider.
//
// It registers subscriber addresses into the configured audience via
// the Resend contacts API and resolves provider credentials either
// statically or through a startup readiness gate.
package newsletter

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// Sender issues the provider call that registers an email address into
// the mailing list. One call per subscription attempt, no retry.
type Sender interface {
	AddContact(ctx context.Context, creds Credentials, email string) error
}

// contactsCreator is the slice of the provider client this package uses.
type contactsCreator interface {
	CreateWithContext(ctx context.Context, params *resend.CreateContactRequest) (resend.CreateContactResponse, error)
}

// ResendSender implements Sender against the Resend contacts API.
//
// The provider client is constructed per call from the resolved
// credentials: with the secret-backed policy the API key does not
// exist until the readiness gate opens.
type ResendSender struct {
	newContacts func(apiKey string) contactsCreator
}

// NewResendSender returns a Sender backed by the Resend API.
func NewResendSender() *ResendSender {
	return &ResendSender{
		newContacts: func(apiKey string) contactsCreator {
			return resend.NewClient(apiKey).Contacts
		},
	}
}

// AddContact registers the email into the audience as subscribed.
func (s *ResendSender) AddContact(ctx context.Context, creds Credentials, email string) error {
	params := &resend.CreateContactRequest{
		Email:        email,
		AudienceId:   creds.AudienceID,
		Unsubscribed: false,
	}

	_, err := s.newContacts(creds.APIKey).CreateWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "provider contact creation failed")
	}

	return nil
}

// IsTransportError reports whether the provider call failed before a
// provider response was received (network failure, timeout) rather
// than being rejected by the provider itself.
func IsTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
