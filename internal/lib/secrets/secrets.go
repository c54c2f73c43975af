// Package secrets fetches runtime secrets from AWS Secrets Manager.
//
// It is used by the secret-store-backed newsletter credential policy:
// a single fetch at process startup, after which the secret value is
// held in memory for the process lifetime.
package secrets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
)

// Fetch retrieves the named secret's payload from Secrets Manager in
// the given region using the default credential chain.
func Fetch(ctx context.Context, region, name string) ([]byte, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	client := secretsmanager.NewFromConfig(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch secret %s", name)
	}

	if out.SecretString != nil {
		return []byte(*out.SecretString), nil
	}
	return out.SecretBinary, nil
}
