package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
)

// SNSPublisher is the subset of the SNS client used here
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Email publishes the message to an SNS topic with email subscriptions.
// The title becomes the mail subject.
type Email struct {
	api      SNSPublisher
	topicARN string
	timeout  time.Duration
}

// NewEmail creates an email channel for the given topic
func NewEmail(api SNSPublisher, topicARN string, timeout time.Duration) *Email {
	return &Email{api: api, topicARN: topicARN, timeout: timeout}
}

// Name returns the channel name
func (e *Email) Name() string { return NameEmail }

// Send publishes the message, bounded by the configured timeout
func (e *Email) Send(ctx context.Context, msg billing.Message) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	_, err := e.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(e.topicARN),
		Subject:  aws.String(msg.Title),
		Message:  aws.String(msg.Body),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", e.topicARN, err)
	}
	return nil
}
