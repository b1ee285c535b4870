package mealbook

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/feastline/mealbook/booking"
	"github.com/feastline/mealbook/internal/api"
	"github.com/feastline/mealbook/internal/flows"
	"github.com/feastline/mealbook/jwt"
	"github.com/feastline/mealbook/session"
)

// Builder defines a public type used by mealbook APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient *http.Client
	store      session.Store
	redis      redis.UniversalClient
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithHTTPClient overrides the transport's HTTP client. The configured API
// timeout is not applied to an injected client.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStore injects a session persistence backend.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis persists the session in Redis under the configured prefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store != nil && b.redis != nil {
		return nil, errors.New("WithStore and WithRedis are mutually exclusive")
	}

	// -------- SESSION STORE --------
	store := b.store
	switch {
	case store != nil:
	case b.redis != nil:
		store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix)
	case cfg.Session.FilePath != "":
		store = session.NewFileStore(cfg.Session.FilePath)
	default:
		store = session.NewMemoryStore()
	}

	// -------- HOLIDAY SET --------
	dates := append([]string(nil), cfg.Booking.Holidays...)
	if cfg.Booking.HolidayFile != "" {
		fileDates, err := booking.ReadHolidayDates(cfg.Booking.HolidayFile)
		if err != nil {
			return nil, err
		}
		dates = append(dates, fileDates...)
	}
	holidays, err := booking.NewHolidaySet(dates)
	if err != nil {
		return nil, err
	}

	// -------- TRANSPORT --------
	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}
	apiClient := api.New(api.Config{
		BaseURL:       cfg.API.BaseURL,
		UserAgent:     cfg.API.UserAgent,
		HTTPClient:    httpClient,
		RequestIDFrom: requestIDFromContext,
	})

	client := &Client{
		config:   cfg,
		api:      apiClient,
		store:    store,
		holidays: holidays,
		audit:    newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:  NewMetrics(cfg.Metrics),
	}
	client.flows = buildFlowDeps(client)

	b.built = true

	return client, nil
}

// buildFlowDeps wires the flow dependency sets over the client's transport,
// store, and session state. Built once; flows stay stateless.
func buildFlowDeps(c *Client) flows.Deps {
	decodeExpiry := func(token string) int64 {
		claims, err := jwt.Decode(token)
		if err != nil {
			return 0
		}
		return claims.ExpiresAtUnix()
	}

	return flows.Deps{
		Login: flows.LoginDeps{
			Errors: flows.LoginErrors{LoginFailed: ErrLoginFailed},
			Authenticate: func(ctx context.Context, email, password string) (flows.Identity, error) {
				resp, err := c.api.Login(ctx, email, password)
				if err != nil {
					return flows.Identity{}, err
				}
				return flows.Identity{
					Token:       resp.JWT,
					UserID:      resp.UserID,
					Email:       resp.Email,
					DisplayName: resp.Name,
				}, nil
			},
			DecodeExpiry: decodeExpiry,
			Apply:        c.applySession,
			Reset:        c.resetSession,
			Persist: func(ctx context.Context, ident flows.Identity) error {
				return session.Save(ctx, c.store, session.Session{
					Token:       ident.Token,
					UserID:      ident.UserID,
					Email:       ident.Email,
					DisplayName: ident.DisplayName,
					ExpiresAt:   ident.ExpiresAt,
				})
			},
		},
		Logout: flows.LogoutDeps{
			Reset: c.resetSession,
			ClearStore: func(ctx context.Context) error {
				return session.Clear(ctx, c.store)
			},
		},
		Restore: flows.RestoreDeps{
			Load: func(ctx context.Context) (flows.Identity, bool, error) {
				s, complete, err := session.Load(ctx, c.store)
				if err != nil {
					return flows.Identity{}, false, err
				}
				return flows.Identity{
					Token:       s.Token,
					UserID:      s.UserID,
					Email:       s.Email,
					DisplayName: s.DisplayName,
				}, complete, nil
			},
			DecodeExpiry: decodeExpiry,
			Apply:        c.applySession,
		},
		Booking: flows.BookingDeps{
			Errors: flows.BookingErrors{
				NotAuthenticated:   ErrNotAuthenticated,
				HolidayDate:        ErrHolidayDate,
				Unauthorized:       ErrUnauthorized,
				BookingFailed:      ErrBookingFailed,
				NotificationFailed: ErrNotificationFailed,
			},
			IsHoliday: c.holidays.Contains,
			Session: func() (string, string, bool) {
				info := c.Session()
				return info.UserID, info.DisplayName, info.Authenticated
			},
			Create: c.api.CreateBooking,
			Notify: c.api.Notify,
		},
	}
}
