// Package secrets reads channel credentials from AWS Secrets Manager.
//
// Every secret is a JSON object and callers ask for one key of it, for example
// the "info" key holding a Slack webhook URL. Two stores are provided:
//   - ExtensionStore talks to the AWS Parameters and Secrets Lambda extension
//     on localhost, authenticated with the function's session token.
//   - ManagerStore calls GetSecretValue directly.
package secrets
