package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     NewsletterConfig
		wantErr bool
	}{
		{
			name:    "static with inline credentials",
			cfg:     NewsletterConfig{CredentialSource: CredentialSourceStatic, APIKey: "key", AudienceID: "audience"},
			wantErr: false,
		},
		{
			name:    "static without api key",
			cfg:     NewsletterConfig{CredentialSource: CredentialSourceStatic, AudienceID: "audience"},
			wantErr: true,
		},
		{
			name:    "secrets with name and region",
			cfg:     NewsletterConfig{CredentialSource: CredentialSourceSecrets, SecretName: "prod/newsletter", SecretRegion: "eu-west-1"},
			wantErr: false,
		},
		{
			name:    "secrets without region",
			cfg:     NewsletterConfig{CredentialSource: CredentialSourceSecrets, SecretName: "prod/newsletter"},
			wantErr: true,
		},
		{
			name:    "unknown source",
			cfg:     NewsletterConfig{CredentialSource: "vault"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultLoggingConfig(t *testing.T) {
	local := DefaultLoggingConfig("local")
	assert.Equal(t, "debug", local.Level)
	assert.Equal(t, "console", local.Format)
	require.NoError(t, local.Validate())

	prod := DefaultLoggingConfig("production")
	assert.Equal(t, "info", prod.Level)
	assert.Equal(t, "json", prod.Format)
	require.NoError(t, prod.Validate())
}

func TestLoggingConfigValidate(t *testing.T) {
	assert.Error(t, (&LoggingConfig{Level: "verbose", Format: "json"}).Validate())
	assert.Error(t, (&LoggingConfig{Level: "info", Format: "xml"}).Validate())
	assert.NoError(t, (&LoggingConfig{Level: "warn", Format: "console"}).Validate())
}
