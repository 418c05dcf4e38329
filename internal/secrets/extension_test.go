package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtension(t *testing.T, handler http.HandlerFunc, token string) *ExtensionStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewExtensionStore(server.URL, 5*time.Second)
	store.sessionToken = func() string { return token }
	return store
}

func TestExtensionStore_GetSecret(t *testing.T) {
	store := newTestExtension(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/secretsmanager/get", r.URL.Path)
		assert.Equal(t, "billing/slack", r.URL.Query().Get("secretId"))
		assert.Equal(t, "session-token", r.Header.Get("X-Aws-Parameters-Secrets-Token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Name":"billing/slack","SecretString":"{\"info\":\"https://hooks.slack.com/services/T/B/X\"}"}`))
	}, "session-token")

	value, err := store.GetSecret(context.Background(), "billing/slack", "info")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", value)
}

func TestExtensionStore_MissingToken(t *testing.T) {
	store := newTestExtension(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("extension must not be called without a token")
	}, "")

	_, err := store.GetSecret(context.Background(), "billing/slack", "info")
	assert.ErrorIs(t, err, ErrNoSessionToken)
}

func TestExtensionStore_EmptyName(t *testing.T) {
	store := newTestExtension(t, func(w http.ResponseWriter, _ *http.Request) {}, "token")

	_, err := store.GetSecret(context.Background(), "", "info")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestExtensionStore_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server error", http.StatusBadRequest, `{"message":"not found"}`, "status 400"},
		{"not json", http.StatusOK, `<html>`, "failed to decode secret"},
		{"secret not json", http.StatusOK, `{"SecretString":"plain"}`, "not a JSON object"},
		{"missing key", http.StatusOK, `{"SecretString":"{\"other\":\"x\"}"}`, `no key "info"`},
		{"non string key", http.StatusOK, `{"SecretString":"{\"info\":42}"}`, "non-empty string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestExtension(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "token")

			_, err := store.GetSecret(context.Background(), "billing/line", "info")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
