package mealbook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feastline/mealbook/booking"
	"github.com/feastline/mealbook/internal/api"
	"github.com/feastline/mealbook/internal/flows"
	"github.com/feastline/mealbook/session"
)

const (
	auditEventLoginSuccess             = "login_success"
	auditEventLoginFailure             = "login_failure"
	auditEventRegistrationSuccess      = "registration_success"
	auditEventRegistrationFailure      = "registration_failure"
	auditEventLogout                   = "logout"
	auditEventSessionRestored          = "session_restored"
	auditEventSessionRestoreIncomplete = "session_restore_incomplete"
	auditEventEmailUpdated             = "email_updated"
	auditEventBookingSubmitted         = "booking_submitted"
	auditEventBookingHolidayRejected   = "booking_holiday_rejected"
	auditEventBookingUnauthorized      = "booking_unauthorized"
	auditEventBookingFailure           = "booking_failure"
	auditEventNotificationSent         = "notification_sent"
	auditEventNotificationFailure      = "notification_failure"
)

// AuditErrorCode defines a public type used by mealbook APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrLoginFailed        AuditErrorCode = "login_failed"
	auditErrRegistrationFailed AuditErrorCode = "registration_failed"
	auditErrNotAuthenticated   AuditErrorCode = "not_authenticated"
	auditErrHolidayDate        AuditErrorCode = "holiday_date"
	auditErrUnauthorized       AuditErrorCode = "unauthorized"
	auditErrBookingFailed      AuditErrorCode = "booking_failed"
	auditErrNotificationFailed AuditErrorCode = "notification_failed"
	auditErrStoreUnavailable   AuditErrorCode = "store_unavailable"
	auditErrTokenInvalid       AuditErrorCode = "token_invalid"
	auditErrDateOutOfWindow    AuditErrorCode = "date_out_of_window"
	auditErrOther              AuditErrorCode = "error"
)

// Client defines a public type used by mealbook APIs.
//
// Client instances are intended to be configured during initialization through
// [Builder.Build] and are safe for concurrent use afterwards.
type Client struct {
	config   Config
	api      *api.Client
	store    session.Store
	holidays *booking.HolidaySet
	audit    *auditDispatcher
	metrics  *Metrics
	flows    flows.Deps

	mu            sync.RWMutex
	session       session.Session
	authenticated bool
}

// Close describes the close operation and its observable behavior.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped under backpressure.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// Session returns a snapshot of the current session state.
func (c *Client) Session() SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return SessionInfo{
		Authenticated:  c.authenticated,
		Token:          c.session.Token,
		UserID:         c.session.UserID,
		Email:          c.session.Email,
		DisplayName:    c.session.DisplayName,
		CreatedAt:      c.session.CreatedAt,
		TokenExpiresAt: c.session.ExpiresAt,
	}
}

// applySession commits an identity as the authenticated session and installs
// the default bearer header. Flows call it exactly once per successful login
// or restore.
func (c *Client) applySession(ident flows.Identity) {
	c.mu.Lock()
	c.session = session.Session{
		Token:       ident.Token,
		UserID:      ident.UserID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		CreatedAt:   time.Now().Unix(),
		ExpiresAt:   ident.ExpiresAt,
	}
	c.authenticated = true
	c.mu.Unlock()

	c.api.SetAuthorization(ident.Token)
}

// resetSession clears the in-memory session and the default bearer header.
// Persisted fields are untouched; only logout erases those.
func (c *Client) resetSession() {
	c.mu.Lock()
	c.session = session.Session{}
	c.authenticated = false
	c.mu.Unlock()

	c.api.ClearAuthorization()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) metricObserve(id MetricID, d time.Duration) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Observe(id, d)
}

func (c *Client) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID, email string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if c == nil || c.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	c.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrLoginFailed):
		return auditErrLoginFailed
	case errors.Is(err, ErrRegistrationFailed):
		return auditErrRegistrationFailed
	case errors.Is(err, ErrNotAuthenticated):
		return auditErrNotAuthenticated
	case errors.Is(err, ErrHolidayDate):
		return auditErrHolidayDate
	case errors.Is(err, ErrUnauthorized):
		return auditErrUnauthorized
	case errors.Is(err, ErrNotificationFailed):
		return auditErrNotificationFailed
	case errors.Is(err, booking.ErrDateOutOfWindow):
		return auditErrDateOutOfWindow
	case errors.Is(err, ErrBookingFailed):
		return auditErrBookingFailed
	case errors.Is(err, ErrSessionStoreUnavailable),
		errors.Is(err, session.ErrStoreUnavailable):
		return auditErrStoreUnavailable
	case errors.Is(err, ErrTokenInvalid):
		return auditErrTokenInvalid
	default:
		return auditErrOther
	}
}

// ensureRequestID guarantees every client operation carries a request ID so
// the transport header and audit trail line up.
func ensureRequestID(ctx context.Context) context.Context {
	if requestIDFromContext(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}
