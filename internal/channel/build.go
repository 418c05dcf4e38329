package channel

import (
	"time"

	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/secrets"
)

// Build returns the configured channels in delivery order: email, Slack, LINE.
// Unconfigured channels are left out, so the result may be empty.
func Build(cfg *config.Config, publisher SNSPublisher, store secrets.Store) []Sender {
	timeout := time.Duration(cfg.APITimeout) * time.Second
	ch := cfg.Channels

	var senders []Sender
	if ch.EmailTopicARN != "" {
		senders = append(senders, NewEmail(publisher, ch.EmailTopicARN, timeout))
	}
	if ch.SlackSecretName != "" {
		senders = append(senders, NewSlack(store, ch.SlackSecretName, ch.SecretKey, timeout))
	}
	if ch.LineSecretName != "" {
		senders = append(senders, NewLine(store, ch.LineSecretName, ch.SecretKey, ch.LineEndpoint, timeout))
	}
	return senders
}

// Names lists the channel names in order, for logging
func Names(senders []Sender) []string {
	names := make([]string, 0, len(senders))
	for _, s := range senders {
		names = append(names, s.Name())
	}
	return names
}
