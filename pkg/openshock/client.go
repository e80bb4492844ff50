package openshock

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/openshock/internal/logging"
)

const (
	// DefaultBaseURL is the production OpenShock API endpoint
	DefaultBaseURL = "https://api.openshock.app"

	// DefaultTimeout is the default per-request timeout
	DefaultTimeout = 15 * time.Second

	// DefaultIntensity is the intensity used by Shock and Vibrate callers that have no preference
	DefaultIntensity = 50

	// DefaultDuration is the action duration in milliseconds used by Shock and Vibrate callers that have no preference
	DefaultDuration = 1000

	// DefaultBeepDuration is the duration in milliseconds used by Beep callers that have no preference
	DefaultBeepDuration = 300

	// MinDuration and MaxDuration bound every action duration (milliseconds)
	MinDuration = 300
	MaxDuration = 65535

	// MinIntensity and MaxIntensity bound every action intensity
	MinIntensity = 0
	MaxIntensity = 100

	// TokenHeader carries the API key
	TokenHeader = "Open-Shock-Token"
)

// Client talks to the OpenShock HTTP API.
//
// Configuration may be changed at any time with the Set* methods; each
// request works on a snapshot taken when it starts, so a change only affects
// requests issued after it. Client is safe for concurrent use.
type Client struct {
	mu        sync.RWMutex
	baseURL   string
	userAgent string
	apiKey    string
	timeout   time.Duration

	http   *http.Client
	logger *zap.Logger
	debug  bool
}

// settings is the immutable per-request view of the client configuration
type settings struct {
	baseURL   string
	userAgent string
	apiKey    string
	timeout   time.Duration
}

// New creates a client. Without WithUserAgent the client can be constructed
// but every request fails with a precondition error until SetUserAgent is called.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		http:    &http.Client{},
		logger:  logging.GetLogger(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		c.debug = true
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.debug {
		c.installDebugTransport()
	}

	return c, nil
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(raw, " /")
}

// SetUserAgent updates the User-Agent sent with every request
func (c *Client) SetUserAgent(userAgent string) error {
	if userAgent == "" {
		return NewInvalidArgumentError("user agent must be provided to SetUserAgent")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userAgent = userAgent
	return nil
}

// SetBaseURL updates the API base URL, stripping trailing slashes and spaces
func (c *Client) SetBaseURL(baseURL string) error {
	if baseURL == "" {
		return NewInvalidArgumentError("base URL must be provided to SetBaseURL")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normalizeBaseURL(baseURL)
	return nil
}

// SetAPIKey stores the API key used by subsequent requests.
// An empty key clears it and requests are sent anonymously.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return NewInvalidArgumentError("timeout must be > 0")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
	return nil
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// UserAgent returns the configured User-Agent, or "" if none was set
func (c *Client) UserAgent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userAgent
}

// APIKey returns the stored API key, or "" if none is set
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

func (c *Client) snapshot() settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return settings{
		baseURL:   c.baseURL,
		userAgent: c.userAgent,
		apiKey:    c.apiKey,
		timeout:   c.timeout,
	}
}

// ResolveHeaders returns the headers the next request would carry.
// It fails with a precondition error if no User-Agent has been set.
func (c *Client) ResolveHeaders(opts ...RequestOption) (http.Header, error) {
	return c.snapshot().headers(opts)
}

func (s settings) headers(opts []RequestOption) (http.Header, error) {
	if s.userAgent == "" {
		return nil, NewPreconditionError("User-Agent must be set via SetUserAgent before using the client")
	}

	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", s.userAgent)

	key := s.apiKey
	if rc.apiKey != nil {
		key = *rc.apiKey
	}
	if key != "" {
		h.Set(TokenHeader, key)
	}
	return h, nil
}

// do performs one round trip and returns the normalized body.
// A nil body with a nil error means the API answered 2xx with no content.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body any, opts []RequestOption) ([]byte, error) {
	s := c.snapshot()
	header, err := s.headers(opts)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header = header

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		observeRequest(endpoint, method, "error", elapsed)
		logging.LogRequest(c.logger, method, endpoint, 0, elapsed, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	observeRequest(endpoint, method, strconv.Itoa(resp.StatusCode), elapsed)
	logging.LogRequest(c.logger, method, endpoint, resp.StatusCode, elapsed, nil)

	return handleResponse(resp)
}

// handleResponse applies the success/error normalization shared by every operation
func handleResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(data) == 0 {
			return nil, nil
		}
		return data, nil
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		payload = map[string]any{"message": string(data)}
	}
	return nil, NewAPIError(resp.StatusCode, payload)
}

func decode[T any](data []byte, err error) (*T, error) {
	if err != nil || data == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, NewParseError("failed to parse JSON response", err)
	}
	return &v, nil
}

// ListDevices lists every device tied to the account
func (c *Client) ListDevices(ctx context.Context, opts ...RequestOption) (*DeviceListResponse, error) {
	return decode[DeviceListResponse](c.do(ctx, http.MethodGet, "/1/devices", "/1/devices", nil, opts))
}

// GetDevice retrieves a single device
func (c *Client) GetDevice(ctx context.Context, deviceID string, opts ...RequestOption) (*DeviceResponse, error) {
	path := "/1/devices/" + url.PathEscape(deviceID)
	return decode[DeviceResponse](c.do(ctx, http.MethodGet, "/1/devices/{id}", path, nil, opts))
}

// ListShockers lists the shockers owned by the account, or only those on
// deviceID when it is non-empty.
func (c *Client) ListShockers(ctx context.Context, deviceID string, opts ...RequestOption) (*ShockerListResponse, error) {
	if deviceID != "" {
		path := "/1/devices/" + url.PathEscape(deviceID) + "/shockers"
		return decode[ShockerListResponse](c.do(ctx, http.MethodGet, "/1/devices/{id}/shockers", path, nil, opts))
	}
	return decode[ShockerListResponse](c.do(ctx, http.MethodGet, "/1/shockers/own", "/1/shockers/own", nil, opts))
}

// GetShocker retrieves a single shocker
func (c *Client) GetShocker(ctx context.Context, shockerID string, opts ...RequestOption) (*ShockerResponse, error) {
	path := "/1/shockers/" + url.PathEscape(shockerID)
	return decode[ShockerResponse](c.do(ctx, http.MethodGet, "/1/shockers/{id}", path, nil, opts))
}

// ClampDuration bounds d to [MinDuration, MaxDuration]
func ClampDuration(d int) int {
	return max(MinDuration, min(MaxDuration, d))
}

// ClampIntensity bounds i to [MinIntensity, MaxIntensity]
func ClampIntensity(i int) int {
	return max(MinIntensity, min(MaxIntensity, i))
}

// NewControlRequest builds the body for a single action. Intensity and
// duration are clamped, never rejected.
func NewControlRequest(shockerID string, controlType ControlType, intensity, duration int, exclusive bool) ControlRequest {
	return ControlRequest{
		Shocks: []Control{{
			ID:        shockerID,
			Type:      controlType,
			Intensity: ClampIntensity(intensity),
			Duration:  ClampDuration(duration),
			Exclusive: exclusive,
		}},
	}
}

// SendAction sends a single control command to a shocker.
//
// Out-of-range intensity and duration are clamped. The returned response is
// nil when the API answers with no content.
func (c *Client) SendAction(ctx context.Context, shockerID string, controlType ControlType, intensity, duration int, exclusive bool, opts ...RequestOption) (*ActionResponse, error) {
	body := NewControlRequest(shockerID, controlType, intensity, duration, exclusive)
	ctrl := body.Shocks[0]
	if ctrl.Intensity != intensity || ctrl.Duration != duration {
		c.logger.Debug("Clamped action input",
			zap.Int("intensity", intensity), zap.Int("clamped_intensity", ctrl.Intensity),
			zap.Int("duration_ms", duration), zap.Int("clamped_duration_ms", ctrl.Duration),
		)
	}
	logging.LogAction(c.logger, ctrl.ID, string(ctrl.Type), ctrl.Intensity, ctrl.Duration, ctrl.Exclusive)

	return decode[ActionResponse](c.do(ctx, http.MethodPost, "/2/shockers/control", "/2/shockers/control", body, opts))
}

// Shock triggers a shock action
func (c *Client) Shock(ctx context.Context, shockerID string, intensity, duration int, opts ...RequestOption) (*ActionResponse, error) {
	return c.SendAction(ctx, shockerID, ControlShock, intensity, duration, false, opts...)
}

// Vibrate triggers a vibrate action
func (c *Client) Vibrate(ctx context.Context, shockerID string, intensity, duration int, opts ...RequestOption) (*ActionResponse, error) {
	return c.SendAction(ctx, shockerID, ControlVibrate, intensity, duration, false, opts...)
}

// Beep triggers a sound action. Sound has no intensity.
func (c *Client) Beep(ctx context.Context, shockerID string, duration int, opts ...RequestOption) (*ActionResponse, error) {
	return c.SendAction(ctx, shockerID, ControlSound, 0, duration, false, opts...)
}

// Stop cancels whatever the shocker is doing. It is sent exclusive so it
// overrides commands still queued on the shocker.
func (c *Client) Stop(ctx context.Context, shockerID string, opts ...RequestOption) (*ActionResponse, error) {
	return c.SendAction(ctx, shockerID, ControlStop, 0, MinDuration, true, opts...)
}
