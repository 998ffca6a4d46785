package client

import (
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://api.example.com"

	// DefaultTimeout bounds each request, including retries' individual
	// attempts.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of additional attempts made after a
	// retryable failure.
	DefaultMaxRetries = 3

	// DefaultUserAgent identifies this client on the wire.
	DefaultUserAgent = "guardrail/1.0"
)

// Config holds the validated client settings. Construct it with NewConfig;
// a Config is copied into the Client and never mutated afterwards.
type Config struct {
	// APIKey is the opaque bearer token sent on every request. Required.
	APIKey string

	// BaseURL is the API origin requests are issued against.
	BaseURL string

	// Timeout bounds each HTTP attempt. Must be positive.
	Timeout time.Duration

	// MaxRetries is the retry budget for transport errors and retryable
	// statuses (429, 5xx). Zero disables retries. Must not be negative.
	MaxRetries int

	// UserAgent is sent as the User-Agent header.
	UserAgent string
}

// ConfigOption overrides a Config default.
type ConfigOption func(*Config)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) ConfigOption {
	return func(c *Config) { c.BaseURL = u }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) { c.Timeout = d }
}

// WithMaxRetries overrides DefaultMaxRetries.
func WithMaxRetries(n int) ConfigOption {
	return func(c *Config) { c.MaxRetries = n }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) { c.UserAgent = ua }
}

// NewConfig builds a Config from apiKey and options, applying defaults and
// validating the result. It fails with an ErrInvalidConfig-wrapped error
// when the API key is empty, the timeout is not positive, the retry budget
// is negative, or the base URL does not parse.
func NewConfig(apiKey string, opts ...ConfigOption) (Config, error) {
	cfg := Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		UserAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required.Error("API key is required")),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0).Error("cannot be negative")),
		validation.Field(&c.UserAgent, validation.Required),
	); err != nil {
		return err
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("BaseURL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BaseURL: %q is not an absolute URL", c.BaseURL)
	}

	return nil
}

func positiveDuration(value interface{}) error {
	d, ok := value.(time.Duration)
	if !ok {
		return fmt.Errorf("must be a duration")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
