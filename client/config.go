// Package client implements stripe.Transport over HTTP.
//
// A Client authenticates with a secret key, sends each request's parameters
// in the query string or a form body as the request says, retries transient
// failures with exponential backoff, and reports API failures as *APIError.
package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default client settings.
const (
	DefaultBaseURL    = "https://api.stripe.com/v1"
	DefaultTimeout    = 80 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// APIKeyEnv overrides the configured secret key when set.
const APIKeyEnv = "STRIPE_API_KEY"

// Config holds the settings of a Client.
type Config struct {
	// APIKey is the secret or restricted key sent as a bearer token.
	APIKey string `yaml:"api_key" validate:"required,startswith=sk_|startswith=rk_"`

	// BaseURL is prefixed to every request path.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// APIVersion pins the Stripe-Version header. Empty uses the account default.
	APIVersion string `yaml:"api_version,omitempty"`

	// Account makes requests on behalf of a connected account.
	Account string `yaml:"account,omitempty" validate:"omitempty,startswith=acct_"`

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`

	// MaxRetries is the number of extra attempts after a retryable failure.
	MaxRetries int `yaml:"max_retries" validate:"gte=0,lte=10"`

	// RetryDelay is the first backoff delay; it doubles on each retry.
	RetryDelay time.Duration `yaml:"retry_delay" validate:"gte=0"`
}

// DefaultConfig returns a Config pointing at the live API with no key.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// WithAPIKey returns a copy of the config with the specified key.
func (c Config) WithAPIKey(key string) Config {
	c.APIKey = key
	return c
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithAccount returns a copy of the config acting for the connected account.
func (c Config) WithAccount(account string) Config {
	c.Account = account
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// WithRetries returns a copy of the config with the specified retry settings.
func (c Config) WithRetries(maxRetries int, retryDelay time.Duration) Config {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
	return c
}

// LoadConfig reads a YAML config file on top of DefaultConfig, applies the
// STRIPE_API_KEY override and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfig is LoadConfig without the environment override and validation,
// for callers that apply their own overrides first.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv returns a copy of the config with environment overrides applied.
func (c Config) FromEnv() Config {
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.APIKey = key
	}
	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ConfigError lists the invalid fields of a Config.
type ConfigError struct {
	Fields map[string]string
	msg    string
}

func (e *ConfigError) Error() string { return "invalid client config: " + e.msg }

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	fields := make(map[string]string, len(valErrs))
	messages := make([]string, 0, len(valErrs))
	for _, fe := range valErrs {
		msg := describeFieldError(fe)
		fields[fe.Field()] = msg
		messages = append(messages, fe.Field()+": "+msg)
	}
	return &ConfigError{Fields: fields, msg: strings.Join(messages, "; ")}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %s", fe.Param())
	case "startswith=sk_|startswith=rk_":
		return "must be a secret (sk_) or restricted (rk_) key"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
