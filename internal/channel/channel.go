package channel

import (
	"context"

	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
)

// Channel names
const (
	NameEmail = "email"
	NameSlack = "slack"
	NameLine  = "line"
)

// Sender delivers a notification to one destination
type Sender interface {
	// Name returns the channel identifier
	Name() string

	// Send delivers the message
	Send(ctx context.Context, msg billing.Message) error
}
