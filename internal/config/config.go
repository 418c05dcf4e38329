package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Supported cost providers
const (
	ProviderAWS   = "aws"
	ProviderAzure = "azure"
)

// Supported secret sources
const (
	SecretsSourceExtension = "extension" // Lambda Parameters and Secrets extension
	SecretsSourceAPI       = "api"       // Secrets Manager API
)

// Configuration validation constants
const (
	MaxAPITimeout = 300 // seconds

	// Default values
	DefaultProvider           = ProviderAWS
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultAPITimeout         = 30 // API timeout in seconds
	DefaultCostExplorerRegion = "us-east-1"
	DefaultSecretKey          = "info"
	DefaultLineEndpoint       = "https://notify-api.line.me/api/notify"
	DefaultSecretsSource      = SecretsSourceExtension
	DefaultExtensionEndpoint  = "http://localhost:2773"
	DefaultMetricsJob         = "billing_notifier"
)

// AWSConfig holds AWS specific settings
type AWSConfig struct {
	// Cost Explorer is only served from us-east-1
	CostExplorerRegion string `yaml:"cost_explorer_region"`
}

// AzureConfig holds Azure specific settings
type AzureConfig struct {
	SubscriptionID string `yaml:"subscription_id"`
}

// ChannelsConfig selects the notification destinations. An empty value
// disables the channel.
type ChannelsConfig struct {
	EmailTopicARN   string `yaml:"email_topic_arn"`
	SlackSecretName string `yaml:"slack_secret_name"`
	LineSecretName  string `yaml:"line_secret_name"`
	SecretKey       string `yaml:"secret_key"` // JSON key inside the secret
	LineEndpoint    string `yaml:"line_endpoint"`
}

// SecretsConfig selects how channel secrets are read
type SecretsConfig struct {
	Source            string `yaml:"source"`
	ExtensionEndpoint string `yaml:"extension_endpoint"`
}

// MetricsConfig configures the optional Pushgateway
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// Config represents the application configuration
type Config struct {
	Provider   string         `yaml:"provider"`
	LogLevel   string         `yaml:"log_level"`
	LogFormat  string         `yaml:"log_format"`
	APITimeout int            `yaml:"api_timeout"` // seconds
	AWS        AWSConfig      `yaml:"aws"`
	Azure      AzureConfig    `yaml:"azure"`
	Channels   ChannelsConfig `yaml:"channels"`
	Secrets    SecretsConfig  `yaml:"secrets"`
	Metrics    MetricsConfig  `yaml:"metrics"`
}

// Load reads the optional YAML file at path, then applies defaults,
// environment variable overrides and validation. An empty path configures
// from the environment alone, which is how the Lambda function runs.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		// #nosec G304 -- Config file path is provided by administrator via CLI flag, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// HasChannels reports whether at least one destination is configured
func (c *Config) HasChannels() bool {
	ch := c.Channels
	return ch.EmailTopicARN != "" || ch.SlackSecretName != "" || ch.LineSecretName != ""
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.APITimeout == 0 {
		cfg.APITimeout = DefaultAPITimeout
	}
	if cfg.AWS.CostExplorerRegion == "" {
		cfg.AWS.CostExplorerRegion = DefaultCostExplorerRegion
	}
	if cfg.Channels.SecretKey == "" {
		cfg.Channels.SecretKey = DefaultSecretKey
	}
	if cfg.Channels.LineEndpoint == "" {
		cfg.Channels.LineEndpoint = DefaultLineEndpoint
	}
	if cfg.Secrets.Source == "" {
		cfg.Secrets.Source = DefaultSecretsSource
	}
	if cfg.Secrets.ExtensionEndpoint == "" {
		cfg.Secrets.ExtensionEndpoint = DefaultExtensionEndpoint
	}
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = DefaultMetricsJob
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	// Channel variables keep the names the function has always been deployed with
	if val := os.Getenv("EMAIL_TOPIC_ARN"); val != "" {
		cfg.Channels.EmailTopicARN = val
	}
	if val := os.Getenv("SLACK_SECRET_NAME"); val != "" {
		cfg.Channels.SlackSecretName = val
	}
	if val := os.Getenv("LINE_SECRET_NAME"); val != "" {
		cfg.Channels.LineSecretName = val
	}
	if val := os.Getenv("AZURE_SUBSCRIPTION_ID"); val != "" {
		cfg.Azure.SubscriptionID = val
	}

	if val := os.Getenv("BILLING_NOTIFIER_PROVIDER"); val != "" {
		cfg.Provider = strings.ToLower(val)
	}
	if val := os.Getenv("BILLING_NOTIFIER_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("BILLING_NOTIFIER_LOG_FORMAT"); val != "" {
		cfg.LogFormat = val
	}
	if val := os.Getenv("BILLING_NOTIFIER_API_TIMEOUT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid BILLING_NOTIFIER_API_TIMEOUT: must be an integer, got %q", val)
		}
		cfg.APITimeout = i
	}
	if val := os.Getenv("BILLING_NOTIFIER_SECRET_KEY"); val != "" {
		cfg.Channels.SecretKey = val
	}
	if val := os.Getenv("BILLING_NOTIFIER_SECRETS_SOURCE"); val != "" {
		cfg.Secrets.Source = strings.ToLower(val)
	}
	if val := os.Getenv("BILLING_NOTIFIER_PUSHGATEWAY_URL"); val != "" {
		cfg.Metrics.PushgatewayURL = val
	}

	return nil
}

// validate checks the configuration and reports every problem found
func validate(cfg *Config) error {
	var result *multierror.Error

	switch cfg.Provider {
	case ProviderAWS:
	case ProviderAzure:
		if cfg.Azure.SubscriptionID == "" {
			result = multierror.Append(result, errors.New("azure.subscription_id is required for the azure provider"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("provider must be %q or %q, got %q", ProviderAWS, ProviderAzure, cfg.Provider))
	}

	if cfg.APITimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("api_timeout must be positive, got %d", cfg.APITimeout))
	} else if cfg.APITimeout > MaxAPITimeout {
		result = multierror.Append(result, fmt.Errorf("api_timeout should not exceed %d seconds, got %d", MaxAPITimeout, cfg.APITimeout))
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log_level must be debug, info, warn or error, got %q", cfg.LogLevel))
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("log_format must be json or text, got %q", cfg.LogFormat))
	}

	switch cfg.Secrets.Source {
	case SecretsSourceExtension, SecretsSourceAPI:
	default:
		result = multierror.Append(result, fmt.Errorf("secrets.source must be %q or %q, got %q",
			SecretsSourceExtension, SecretsSourceAPI, cfg.Secrets.Source))
	}

	if cfg.Channels.EmailTopicARN != "" && !strings.HasPrefix(cfg.Channels.EmailTopicARN, "arn:") {
		result = multierror.Append(result, fmt.Errorf("channels.email_topic_arn is not an ARN: %q", cfg.Channels.EmailTopicARN))
	}

	return result.ErrorOrNil()
}
