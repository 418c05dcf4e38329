package channel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/secrets"
)

// Slack posts the message to an incoming webhook. The webhook URL is read
// from the secret store on every send.
type Slack struct {
	secrets    secrets.Store
	secretName string
	secretKey  string
	client     *http.Client
}

// NewSlack creates a Slack channel whose webhook URL lives in secretName
func NewSlack(store secrets.Store, secretName, secretKey string, timeout time.Duration) *Slack {
	return &Slack{
		secrets:    store,
		secretName: secretName,
		secretKey:  secretKey,
		client:     &http.Client{Timeout: timeout},
	}
}

// Name returns the channel name
func (s *Slack) Name() string { return NameSlack }

// Send resolves the webhook URL and posts the message to it
func (s *Slack) Send(ctx context.Context, msg billing.Message) error {
	webhookURL, err := s.secrets.GetSecret(ctx, s.secretName, s.secretKey)
	if err != nil {
		return fmt.Errorf("slack webhook url: %w", err)
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, s.client, webhookMessage(msg)); err != nil {
		return fmt.Errorf("send slack message: %w", err)
	}
	return nil
}

// webhookMessage renders the title as a header block over a plain text
// section; Text is the fallback shown in notifications
func webhookMessage(msg billing.Message) *slack.WebhookMessage {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, msg.Title, false, false))
	section := slack.NewSectionBlock(slack.NewTextBlockObject(slack.PlainTextType, msg.Body, false, false), nil, nil)

	return &slack.WebhookMessage{
		Text: msg.Title,
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{header, section},
		},
	}
}
