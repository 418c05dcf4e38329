package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ManagerStore reads secrets straight from the Secrets Manager API
type ManagerStore struct {
	api     SecretsManagerAPI
	timeout time.Duration
}

// NewManagerStore creates a store backed by a Secrets Manager client
func NewManagerStore(api SecretsManagerAPI, timeout time.Duration) *ManagerStore {
	return &ManagerStore{api: api, timeout: timeout}
}

// NewManagerStoreFromConfig builds the Secrets Manager client from an SDK configuration
func NewManagerStoreFromConfig(awsCfg aws.Config, timeout time.Duration) *ManagerStore {
	return NewManagerStore(secretsmanager.NewFromConfig(awsCfg), timeout)
}

// GetSecret fetches secret name and returns its key field
func (s *ManagerStore) GetSecret(ctx context.Context, name, key string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	return extractKey(name, *out.SecretString, key)
}
