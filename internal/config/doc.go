// Package config provides configuration management for the billing notifier.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. Optional YAML configuration file
//  3. Default values (lowest priority)
//
// The Lambda deployment usually has no file and relies on the environment.
//
// Supported environment variables:
//   - EMAIL_TOPIC_ARN: SNS topic that receives the summary by email
//   - SLACK_SECRET_NAME: secret holding the Slack incoming webhook URL
//   - LINE_SECRET_NAME: secret holding the LINE Notify access token
//   - AZURE_SUBSCRIPTION_ID: subscription queried by the azure provider
//   - BILLING_NOTIFIER_PROVIDER: aws (default) or azure
//   - BILLING_NOTIFIER_LOG_LEVEL: debug, info, warn, error
//   - BILLING_NOTIFIER_LOG_FORMAT: json (default) or text
//   - BILLING_NOTIFIER_API_TIMEOUT: per call timeout in seconds (1-300)
//   - BILLING_NOTIFIER_SECRET_KEY: JSON key read from each secret (default "info")
//   - BILLING_NOTIFIER_SECRETS_SOURCE: extension (default) or api
//   - BILLING_NOTIFIER_PUSHGATEWAY_URL: push run metrics to this Pushgateway
//
// Example configuration file (config.yaml):
//
//	provider: aws
//	log_level: info
//	api_timeout: 30
//
//	channels:
//	  email_topic_arn: "arn:aws:sns:us-east-1:123456789012:billing"
//	  slack_secret_name: "billing/slack"
//
//	secrets:
//	  source: extension
//
// Example usage:
//
//	cfg, err := config.Load(*configPath)
//	if err != nil {
//		log.Fatalf("Failed to load config: %v", err)
//	}
package config
