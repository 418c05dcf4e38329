package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a secret is requested without a name
var ErrEmptyName = errors.New("secret name must not be empty")

// Store reads a single string field from a JSON secret
type Store interface {
	GetSecret(ctx context.Context, name, key string) (string, error)
}

// StoreFunc adapts a function to Store
type StoreFunc func(ctx context.Context, name, key string) (string, error)

// GetSecret calls f
func (f StoreFunc) GetSecret(ctx context.Context, name, key string) (string, error) {
	return f(ctx, name, key)
}

// extractKey decodes a secret string holding a JSON object and returns the
// string stored under key
func extractKey(name, secretString, key string) (string, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(secretString), &fields); err != nil {
		return "", fmt.Errorf("secret %s is not a JSON object: %w", name, err)
	}

	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("secret %s has no key %q", name, key)
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s key %q must be a non-empty string", name, key)
	}
	return value, nil
}
