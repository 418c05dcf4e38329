// Package channel implements the notification destinations.
//
// Each destination implements Sender. Build turns the channel configuration
// into an ordered slice; the notifier walks it sequentially and stops at the
// first failure.
//
//   - Email publishes to an SNS topic (title as subject, body as message).
//   - Slack posts header and section blocks to an incoming webhook.
//   - Line posts "title\n\nbody" to LINE Notify with a bearer token.
//
// Slack and LINE credentials are read from a secrets.Store at send time.
package channel
