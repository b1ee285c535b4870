package mealbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feastline/mealbook/internal/api"
	"github.com/feastline/mealbook/internal/flows"
	"github.com/feastline/mealbook/jwt"
	"github.com/feastline/mealbook/session"
)

func (c *Client) ready() error {
	if c == nil || c.api == nil || c.store == nil {
		return ErrClientNotReady
	}
	return nil
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := c.ready(); err != nil {
		return LoginResult{}, err
	}
	ctx = ensureRequestID(ctx)

	ident, err := flows.RunLogin(ctx, email, password, c.flows.Login)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, "", email, err, nil)
		return LoginResult{}, err
	}

	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, ident.UserID, ident.Email, nil, nil)

	return LoginResult{
		Token:       ident.Token,
		UserID:      ident.UserID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
	}, nil
}

// Register creates a new account. It never touches the session: a freshly
// registered user still has to log in.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) Register(ctx context.Context, name, email, password, confirmPassword string) error {
	if err := c.ready(); err != nil {
		return err
	}
	ctx = ensureRequestID(ctx)

	// The password/confirm pair is forwarded as-is; mismatch is the server's
	// call, not this client's.
	req := api.SignupRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := c.api.Signup(ctx, req); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		c.metricInc(MetricRegistrationFailure)
		c.emitAudit(ctx, auditEventRegistrationFailure, false, "", email, wrapped, nil)
		return wrapped
	}

	c.metricInc(MetricRegistrationSuccess)
	c.emitAudit(ctx, auditEventRegistrationSuccess, true, "", email, nil, nil)
	return nil
}

// Logout clears the in-memory session first and the persisted fields second, so
// the caller ends up logged out even when the store is unreachable. Safe to call
// when not logged in.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	ctx = ensureRequestID(ctx)

	info := c.Session()

	if err := flows.RunLogout(ctx, c.flows.Logout); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		c.emitAudit(ctx, auditEventLogout, false, info.UserID, info.Email, wrapped, nil)
		return wrapped
	}

	c.metricInc(MetricLogout)
	c.emitAudit(ctx, auditEventLogout, true, info.UserID, info.Email, nil, nil)
	return nil
}

// CheckAuth rehydrates the session from the persisted fields. It reports true
// only when all fields were present; a partial set leaves both the session and
// the store untouched.
//
// CheckAuth may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	ctx = ensureRequestID(ctx)

	ident, restored, err := flows.RunRestore(ctx, c.flows.Restore)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		c.emitAudit(ctx, auditEventSessionRestoreIncomplete, false, "", "", wrapped, nil)
		return false, wrapped
	}
	if !restored {
		c.metricInc(MetricSessionRestoreIncomplete)
		c.emitAudit(ctx, auditEventSessionRestoreIncomplete, false, "", "", nil, nil)
		return false, nil
	}

	c.metricInc(MetricSessionRestored)
	c.emitAudit(ctx, auditEventSessionRestored, true, ident.UserID, ident.Email, nil, nil)
	return true, nil
}

// SetEmail updates the session email in memory and in the store without
// touching the other fields or the authenticated flag.
//
// SetEmail may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) SetEmail(ctx context.Context, email string) error {
	if err := c.ready(); err != nil {
		return err
	}
	ctx = ensureRequestID(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email must not be empty")
	}

	c.mu.Lock()
	c.session.Email = email
	userID := c.session.UserID
	c.mu.Unlock()

	if err := c.store.Set(ctx, session.KeyEmail, email); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		c.emitAudit(ctx, auditEventEmailUpdated, false, userID, email, wrapped, nil)
		return wrapped
	}

	c.metricInc(MetricEmailUpdated)
	c.emitAudit(ctx, auditEventEmailUpdated, true, userID, email, nil, nil)
	return nil
}

// IntrospectToken decodes the current session token's claims without verifying
// the signature. Useful for display and expiry hints, never for authorization.
//
// IntrospectToken may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) IntrospectToken() (*jwt.Claims, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	info := c.Session()
	if info.Token == "" {
		return nil, ErrNotAuthenticated
	}

	claims, err := jwt.Decode(info.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}
