package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/secrets"
)

// Line posts the message to LINE Notify. The access token is read from the
// secret store on every send.
type Line struct {
	secrets    secrets.Store
	secretName string
	secretKey  string
	endpoint   string
	client     *resty.Client
}

// NewLine creates a LINE channel whose access token lives in secretName
func NewLine(store secrets.Store, secretName, secretKey, endpoint string, timeout time.Duration) *Line {
	return &Line{
		secrets:    store,
		secretName: secretName,
		secretKey:  secretKey,
		endpoint:   endpoint,
		client:     resty.New().SetTimeout(timeout),
	}
}

// Name returns the channel name
func (l *Line) Name() string { return NameLine }

// Send resolves the access token and posts the message to LINE Notify
func (l *Line) Send(ctx context.Context, msg billing.Message) error {
	token, err := l.secrets.GetSecret(ctx, l.secretName, l.secretKey)
	if err != nil {
		return fmt.Errorf("line access token: %w", err)
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetFormData(map[string]string{
			"message": msg.Title + "\n\n" + msg.Body,
		}).
		Post(l.endpoint)
	if err != nil {
		return fmt.Errorf("send line message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("line returned status %d", resp.StatusCode())
	}
	return nil
}
