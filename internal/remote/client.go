package remote

//go:generate mockgen -destination=mock_api.go -package=remote github.com/five82/deskremote/internal/remote API

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API is the control server contract consumed by the engine.
// *Client implements it; tests use MockAPI.
type API interface {
	FetchStatus(ctx context.Context) (*StatusResponse, error)
	FetchInfo(ctx context.Context) (*SystemInfo, error)
	FetchVolume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, volume int) error
	FetchBrightness(ctx context.Context) (float64, error)
	SetBrightness(ctx context.Context, brightness float64) error
	PerformAction(ctx context.Context, kind ActionKind) (*ActionResult, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the control server HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultPort      = "5001"
	defaultUserAgent = "deskremote/0.1"
	requestTimeout   = 5 * time.Second
	maxErrorBody     = 4 << 10
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the given base URL. A bare host gets the
// http scheme and the default port.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized server address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchStatus probes server liveness.
func (c *Client) FetchStatus(ctx context.Context) (*StatusResponse, error) {
	var payload StatusResponse
	if err := c.do(ctx, http.MethodGet, "/status", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchInfo retrieves battery, CPU and memory telemetry.
func (c *Client) FetchInfo(ctx context.Context) (*SystemInfo, error) {
	var payload SystemInfo
	if err := c.do(ctx, http.MethodGet, "/info", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchVolume returns the current output volume (0-100).
func (c *Client) FetchVolume(ctx context.Context) (int, error) {
	var payload VolumeBody
	if err := c.do(ctx, http.MethodGet, "/volume", nil, &payload); err != nil {
		return 0, err
	}
	return payload.Volume, nil
}

// SetVolume writes the output volume.
func (c *Client) SetVolume(ctx context.Context, volume int) error {
	var payload SuccessResponse
	if err := c.do(ctx, http.MethodPost, "/volume", VolumeBody{Volume: volume}, &payload); err != nil {
		return err
	}
	if !payload.Success {
		return &Error{Kind: KindRejected, Path: "/volume", Message: "server rejected volume change"}
	}
	return nil
}

// FetchBrightness returns the display brightness (0.0-1.0).
func (c *Client) FetchBrightness(ctx context.Context) (float64, error) {
	var payload BrightnessBody
	if err := c.do(ctx, http.MethodGet, "/brightness", nil, &payload); err != nil {
		return 0, err
	}
	return payload.Brightness, nil
}

// SetBrightness writes the display brightness.
func (c *Client) SetBrightness(ctx context.Context, brightness float64) error {
	var payload SuccessResponse
	if err := c.do(ctx, http.MethodPost, "/brightness", BrightnessBody{Brightness: brightness}, &payload); err != nil {
		return err
	}
	if !payload.Success {
		return &Error{Kind: KindRejected, Path: "/brightness", Message: "server rejected brightness change"}
	}
	return nil
}

// PerformAction issues a single power action. It is never retried.
func (c *Client) PerformAction(ctx context.Context, kind ActionKind) (*ActionResult, error) {
	var payload ActionResult
	if err := c.do(ctx, http.MethodPost, "/action", ActionRequest{Type: kind}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil || c.baseURL == nil {
		return &Error{Kind: KindConfig, Path: path, Message: "base URL is not set"}
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Path: path, Message: networkMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:    KindHTTP,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Kind: KindMalformed, Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// serverMessage pulls "message" or "error" out of a JSON error body, falling
// back to the trimmed text.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func networkMessage(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// ParseBaseURL normalizes a server address. Empty input is an
// invalid-configuration error.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &Error{Kind: KindConfig, Message: "base URL is not set"}
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &Error{Kind: KindConfig, Message: fmt.Sprintf("parse base URL %q: %v", raw, err), Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &Error{Kind: KindConfig, Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Hostname() == "" {
		return nil, &Error{Kind: KindConfig, Message: fmt.Sprintf("base URL %q has no host", raw)}
	}
	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), DefaultPort)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u, nil
}
