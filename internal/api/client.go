package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	loginPath        = "/api/auth/login"
	signupPath       = "/auth/signup1"
	mealPath         = "/api/meals"
	bookingPath      = "/api/bookings"
	notificationPath = "/api/notifications"
)

// Responses are small JSON bodies; anything larger is a misbehaving backend.
const maxResponseBytes = 1 << 20

// StatusError carries a non-success HTTP status and the server-supplied message
// when the body had one.
type StatusError struct {
	Code    int
	Message string
}

// Error describes the error operation and its observable behavior.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("http %d", e.Code)
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	JWT    string `json:"jwt"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// SignupRequest is the POST /auth/signup1 body. The password/confirm pair is
// forwarded as-is; mismatch is validated server-side.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// BookingRequest is the body shared by the single-day and range endpoints.
type BookingRequest struct {
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// NotificationRequest is the POST /api/notifications body.
type NotificationRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Confirmation is the parsed booking confirmation. Raw preserves the full body
// for callers that need fields this client does not model.
type Confirmation struct {
	BookingID string          `json:"bookingId"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Raw       json.RawMessage `json:"-"`
}

// Client defines the transport used by the booking engine.
//
// Client instances are intended to be configured during initialization and then
// treated as immutable, except for the default Authorization header which login
// and logout swap atomically.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string

	requestIDFrom func(context.Context) string

	mu            sync.RWMutex
	authorization string
}

// Config carries transport construction parameters.
type Config struct {
	BaseURL   string
	UserAgent string

	HTTPClient *http.Client

	// RequestIDFrom extracts a caller-supplied request ID from ctx; when it
	// returns "", a fresh UUID is stamped instead.
	RequestIDFrom func(context.Context) string
}

// New creates a transport for the given backend base URL.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          httpClient,
		userAgent:     cfg.UserAgent,
		requestIDFrom: cfg.RequestIDFrom,
	}
}

// SetAuthorization installs the default bearer header used by all subsequent
// authorized requests.
func (c *Client) SetAuthorization(token string) {
	c.mu.Lock()
	c.authorization = "Bearer " + token
	c.mu.Unlock()
}

// ClearAuthorization removes the default bearer header.
func (c *Client) ClearAuthorization() {
	c.mu.Lock()
	c.authorization = ""
	c.mu.Unlock()
}

// Authorized reports whether a bearer header is currently installed.
func (c *Client) Authorized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authorization != ""
}

// Login exchanges credentials for the identity payload. Any non-2xx status is a
// *StatusError.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	status, body, err := c.postJSON(ctx, loginPath, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{Code: status, Message: serverMessage(body)}
	}

	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &resp, nil
}

// Signup posts a registration payload. Any non-2xx status is a *StatusError.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	status, body, err := c.postJSON(ctx, signupPath, req)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &StatusError{Code: status, Message: serverMessage(body)}
	}
	return nil
}

// CreateBooking submits a booking. multiDay selects the range endpoint. Exactly
// status 200 is success; everything else is a *StatusError.
func (c *Client) CreateBooking(ctx context.Context, multiDay bool, req BookingRequest) (*Confirmation, error) {
	path := mealPath
	if multiDay {
		path = bookingPath
	}

	status, body, err := c.postJSON(ctx, path, req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Code: status, Message: serverMessage(body)}
	}

	conf := &Confirmation{Raw: append(json.RawMessage(nil), body...)}
	if len(body) > 0 {
		// Confirmation fields are best-effort; an unparseable body still
		// confirms the booking.
		_ = json.Unmarshal(body, conf)
	}
	return conf, nil
}

// Notify fires the post-booking notification. Exactly status 200 is success.
func (c *Client) Notify(ctx context.Context, req NotificationRequest) error {
	status, body, err := c.postJSON(ctx, notificationPath, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &StatusError{Code: status, Message: serverMessage(body)}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", c.requestID(ctx))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.mu.RLock()
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) requestID(ctx context.Context) string {
	if c.requestIDFrom != nil {
		if id := c.requestIDFrom(ctx); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

// serverMessage extracts the conventional {"message": "..."} error body.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}
