package newsletter

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Credentials authenticate calls to the subscription provider and
// select the mailing list to register contacts into.
type Credentials struct {
	APIKey     string `json:"api_key"`
	AudienceID string `json:"audience_id"`
}

// ErrCredentialsNotReady reports that startup credential resolution has
// not completed within the caller's wait window.
var ErrCredentialsNotReady = errors.New("newsletter credentials not ready")

// CredentialsProvider resolves provider credentials for a subscription
// attempt. Implementations may block until one-time startup resolution
// finishes; callers bound the wait with their context.
type CredentialsProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticProvider serves credentials read from process configuration.
type StaticProvider struct {
	creds Credentials
}

// NewStaticProvider returns a provider for statically configured credentials.
func NewStaticProvider(apiKey, audienceID string) *StaticProvider {
	return &StaticProvider{
		creds: Credentials{
			APIKey:     apiKey,
			AudienceID: audienceID,
		},
	}
}

func (p *StaticProvider) Credentials(ctx context.Context) (Credentials, error) {
	return p.creds, nil
}

// GateProvider is a readiness gate for credentials resolved by a
// one-time asynchronous startup routine (e.g. a secret-store fetch).
//
// Requests arriving before resolution wait on the gate instead of
// racing unset variables; once Resolve is called every waiter observes
// the same outcome.
type GateProvider struct {
	ready chan struct{}
	creds Credentials
	err   error
}

// NewGateProvider returns an unresolved gate.
func NewGateProvider() *GateProvider {
	return &GateProvider{
		ready: make(chan struct{}),
	}
}

// Resolve publishes the outcome of the startup routine and opens the
// gate. It must be called exactly once.
func (p *GateProvider) Resolve(creds Credentials, err error) {
	p.creds = creds
	p.err = err
	close(p.ready)
}

// Credentials waits for the gate to open or the context to expire.
func (p *GateProvider) Credentials(ctx context.Context) (Credentials, error) {
	select {
	case <-p.ready:
		if p.err != nil {
			return Credentials{}, p.err
		}
		return p.creds, nil
	case <-ctx.Done():
		return Credentials{}, ErrCredentialsNotReady
	}
}

// CredentialsFromJSON parses a secret payload of the form
// {"api_key": ..., "audience_id": ...} into Credentials.
func CredentialsFromJSON(payload []byte) (Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return Credentials{}, errors.Wrap(err, "failed to parse newsletter credentials secret")
	}
	if creds.APIKey == "" || creds.AudienceID == "" {
		return Credentials{}, errors.New("newsletter credentials secret is missing api_key or audience_id")
	}
	return creds, nil
}
