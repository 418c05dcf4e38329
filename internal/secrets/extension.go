package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// tokenHeader authenticates requests to the Parameters and Secrets extension
const tokenHeader = "X-Aws-Parameters-Secrets-Token"

// ErrNoSessionToken is returned when the extension token is unavailable
var ErrNoSessionToken = errors.New("AWS_SESSION_TOKEN is not set")

// ExtensionStore reads secrets through the AWS Parameters and Secrets Lambda
// extension, which caches them on a local HTTP endpoint
type ExtensionStore struct {
	client       *resty.Client
	sessionToken func() string
}

// NewExtensionStore creates a store talking to the extension at endpoint
func NewExtensionStore(endpoint string, timeout time.Duration) *ExtensionStore {
	return &ExtensionStore{
		client: resty.New().
			SetBaseURL(endpoint).
			SetTimeout(timeout),
		sessionToken: func() string { return os.Getenv("AWS_SESSION_TOKEN") },
	}
}

type extensionResponse struct {
	Name         string `json:"Name"`
	SecretString string `json:"SecretString"`
}

// GetSecret fetches secret name and returns its key field
func (s *ExtensionStore) GetSecret(ctx context.Context, name, key string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	token := s.sessionToken()
	if token == "" {
		return "", ErrNoSessionToken
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader(tokenHeader, token).
		SetQueryParam("secretId", name).
		Get("/secretsmanager/get")
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %s: %w", name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to fetch secret %s: extension returned status %d", name, resp.StatusCode())
	}

	var out extensionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to decode secret %s: %w", name, err)
	}

	return extractKey(name, out.SecretString, key)
}
