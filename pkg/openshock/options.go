package openshock

// This file defines the functional options that configure a Client during
// construction, and the per-request options accepted by every operation.

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithAPIKey sets the stored API key. An empty key leaves the client anonymous.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) error {
		c.apiKey = apiKey
		return nil
	}
}

// WithBaseURL overrides DefaultBaseURL. Trailing slashes and spaces are stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return NewInvalidArgumentError("base URL must not be empty")
		}
		c.baseURL = normalizeBaseURL(baseURL)
		return nil
	}
}

// WithTimeout sets the per-request timeout. The value must be greater than zero.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return NewInvalidArgumentError("timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header. It is required before the first request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		if userAgent == "" {
			return NewInvalidArgumentError("user agent must not be empty")
		}
		c.userAgent = userAgent
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Timeout, if any,
// applies in addition to the client's per-request timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return NewInvalidArgumentError("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithLogger sets the logger used for request and action logs.
// By default the client uses the module's global logger, which is silent
// unless OPENSHOCK_LOG_LEVEL is set.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
		return nil
	}
}

// WithDebugLogging dumps every request and response at debug level when
// enabled is true. The token header is redacted in dumps.
//
// Do not enable this in production; dumps include full bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// RequestOption adjusts a single request without touching the client's
// stored configuration.
type RequestOption func(*requestConfig)

type requestConfig struct {
	apiKey *string
}

// WithToken uses apiKey for this request instead of the stored key.
// An empty apiKey sends the request anonymously.
func WithToken(apiKey string) RequestOption {
	return func(rc *requestConfig) {
		rc.apiKey = &apiKey
	}
}
