package mealbook

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/feastline/mealbook/booking"
)

func loggedInHarness(t *testing.T, mutate ...func(*Config, *Builder)) *testHarness {
	t.Helper()

	h := newTestHarness(t, mutate...)
	if _, err := h.client.Login(context.Background(), "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return h
}

func singleDraft(t *testing.T, start string) *booking.Draft {
	t.Helper()

	d := booking.NewDraft()
	parsed, err := time.Parse(booking.DateLayout, start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	d.SetStartDate(parsed)
	return d
}

func rangeDraft(t *testing.T, start, end string) *booking.Draft {
	t.Helper()

	d := singleDraft(t, start)
	d.SetType(booking.Multiple)
	parsed, err := time.Parse(booking.DateLayout, end)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	d.SetEndDate(parsed)
	return d
}

func TestSubmitSingleDayBooking(t *testing.T) {
	h := loggedInHarness(t)

	result, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, _, meal, bookingCalls, notify := h.backend.calls()
	if meal != 1 || bookingCalls != 0 {
		t.Fatalf("expected the single-day endpoint, got meal=%d booking=%d", meal, bookingCalls)
	}
	if notify != 1 {
		t.Fatalf("expected exactly one notification, got %d", notify)
	}

	if result.Days != 1 || result.StartDate != "2026-09-03" || result.EndDate != "2026-09-03" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Confirmation.BookingID != "b1" || result.Confirmation.Message != "enjoy" {
		t.Fatalf("unexpected confirmation: %+v", result.Confirmation)
	}
	if result.NotificationErr != nil {
		t.Fatalf("unexpected notification error: %v", result.NotificationErr)
	}
}

func TestSubmitRangeBookingUsesRangeEndpoint(t *testing.T) {
	h := loggedInHarness(t)

	result, err := h.client.SubmitBooking(context.Background(), rangeDraft(t, "2024-01-01", "2024-01-03"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, _, meal, bookingCalls, _ := h.backend.calls()
	if meal != 0 || bookingCalls != 1 {
		t.Fatalf("expected the range endpoint, got meal=%d booking=%d", meal, bookingCalls)
	}
	if result.Days != 3 {
		t.Fatalf("expected 3 days, got %d", result.Days)
	}

	h.backend.mu.Lock()
	body := h.backend.lastBooking
	auth := h.backend.lastAuth
	h.backend.mu.Unlock()

	if body["userId"] != "u1" || body["startDate"] != "2024-01-01" || body["endDate"] != "2024-01-03" {
		t.Fatalf("unexpected booking body: %v", body)
	}
	if auth != "Bearer test-token" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
}

func TestSubmitHolidayShortCircuitsBeforeNetwork(t *testing.T) {
	h := loggedInHarness(t, func(cfg *Config, _ *Builder) {
		cfg.Booking.Holidays = []string{"2026-12-25"}
	})

	_, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-12-25"))
	if !errors.Is(err, ErrHolidayDate) {
		t.Fatalf("expected ErrHolidayDate, got %v", err)
	}

	_, _, meal, bookingCalls, notify := h.backend.calls()
	if meal != 0 || bookingCalls != 0 || notify != 0 {
		t.Fatalf("expected no booking traffic, got meal=%d booking=%d notify=%d", meal, bookingCalls, notify)
	}

	if got := h.client.MetricsSnapshot().Counters[MetricBookingHolidayRejected]; got != 1 {
		t.Fatalf("expected 1 holiday-rejected metric, got %d", got)
	}
}

func TestSubmitWithoutSessionFails(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	_, _, meal, bookingCalls, _ := h.backend.calls()
	if meal != 0 || bookingCalls != 0 {
		t.Fatalf("expected no booking traffic, got meal=%d booking=%d", meal, bookingCalls)
	}
}

func TestSubmitForbiddenMapsToUnauthorized(t *testing.T) {
	h := loggedInHarness(t)

	h.backend.mu.Lock()
	h.backend.bookingStatus = http.StatusForbidden
	h.backend.bookingBody = `{"message":"token expired"}`
	h.backend.mu.Unlock()

	_, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	_, _, _, _, notify := h.backend.calls()
	if notify != 0 {
		t.Fatalf("expected no notification after a failed booking, got %d", notify)
	}

	if got := h.client.MetricsSnapshot().Counters[MetricBookingUnauthorized]; got != 1 {
		t.Fatalf("expected 1 unauthorized metric, got %d", got)
	}
}

func TestSubmitServerMessageSurfaced(t *testing.T) {
	h := loggedInHarness(t)

	h.backend.mu.Lock()
	h.backend.bookingStatus = http.StatusConflict
	h.backend.bookingBody = `{"message":"already booked for this date"}`
	h.backend.mu.Unlock()

	_, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if !errors.Is(err, ErrBookingFailed) {
		t.Fatalf("expected ErrBookingFailed, got %v", err)
	}
	if !stringContains(err.Error(), "already booked for this date") {
		t.Fatalf("expected server message in error, got %q", err.Error())
	}
}

func TestSubmitNon200SuccessBodyIsStillFailure(t *testing.T) {
	h := loggedInHarness(t)

	// 201 would pass a generic 2xx check; booking success is exactly 200.
	h.backend.mu.Lock()
	h.backend.bookingStatus = http.StatusCreated
	h.backend.mu.Unlock()

	_, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if !errors.Is(err, ErrBookingFailed) {
		t.Fatalf("expected ErrBookingFailed for 201, got %v", err)
	}
}

func TestSubmitNotificationFailureDoesNotFailBooking(t *testing.T) {
	h := loggedInHarness(t)

	h.backend.mu.Lock()
	h.backend.notifyStatus = http.StatusInternalServerError
	h.backend.mu.Unlock()

	result, err := h.client.SubmitBooking(context.Background(), singleDraft(t, "2026-09-03"))
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if !errors.Is(result.NotificationErr, ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", result.NotificationErr)
	}

	snap := h.client.MetricsSnapshot()
	if snap.Counters[MetricBookingSuccess] != 1 {
		t.Fatalf("expected booking success metric, got %d", snap.Counters[MetricBookingSuccess])
	}
	if snap.Counters[MetricNotificationFailure] != 1 {
		t.Fatalf("expected notification failure metric, got %d", snap.Counters[MetricNotificationFailure])
	}
}

func TestSubmitNotificationCarriesSessionAndDates(t *testing.T) {
	h := loggedInHarness(t)

	if _, err := h.client.SubmitBooking(context.Background(), rangeDraft(t, "2026-09-03", "2026-09-05")); err != nil {
		t.Fatal(err)
	}

	h.backend.mu.Lock()
	body := h.backend.lastNotify
	h.backend.mu.Unlock()

	if body["userId"] != "u1" || body["userName"] != "Alice" {
		t.Fatalf("unexpected notification identity: %v", body)
	}
	if body["startDate"] != "2026-09-03" || body["endDate"] != "2026-09-05" {
		t.Fatalf("unexpected notification dates: %v", body)
	}
}

func TestSubmitOutsideBookingWindow(t *testing.T) {
	h := loggedInHarness(t, func(cfg *Config, _ *Builder) {
		cfg.Booking.MaxAdvanceDays = 90
	})

	far := time.Now().AddDate(0, 0, 120).Format(booking.DateLayout)
	draft := singleDraft(t, far)

	_, err := h.client.SubmitBooking(context.Background(), draft)
	if !errors.Is(err, booking.ErrDateOutOfWindow) {
		t.Fatalf("expected ErrDateOutOfWindow, got %v", err)
	}

	_, _, meal, bookingCalls, _ := h.backend.calls()
	if meal != 0 || bookingCalls != 0 {
		t.Fatalf("expected no booking traffic, got meal=%d booking=%d", meal, bookingCalls)
	}

	// The rejected draft reopens for a corrected retry.
	if draft.Phase() != booking.StateOpen {
		t.Fatalf("expected reopened draft, got %v", draft.Phase())
	}
}

func TestSubmitDraftLifecycle(t *testing.T) {
	h := loggedInHarness(t)

	draft := singleDraft(t, "2026-09-03")
	if _, err := h.client.SubmitBooking(context.Background(), draft); err != nil {
		t.Fatal(err)
	}
	if draft.Phase() != booking.StateClosed {
		t.Fatalf("expected closed draft after success, got %v", draft.Phase())
	}

	// A closed draft cannot be submitted again.
	if _, err := h.client.SubmitBooking(context.Background(), draft); !errors.Is(err, booking.ErrDraftClosed) {
		t.Fatalf("expected ErrDraftClosed, got %v", err)
	}
}

func TestSubmitFailureReopensDraft(t *testing.T) {
	h := loggedInHarness(t)

	h.backend.mu.Lock()
	h.backend.bookingStatus = http.StatusInternalServerError
	h.backend.mu.Unlock()

	draft := singleDraft(t, "2026-09-03")
	if _, err := h.client.SubmitBooking(context.Background(), draft); !errors.Is(err, ErrBookingFailed) {
		t.Fatalf("expected ErrBookingFailed, got %v", err)
	}
	if draft.Phase() != booking.StateOpen {
		t.Fatalf("expected reopened draft, got %v", draft.Phase())
	}

	// Retry succeeds once the backend recovers.
	h.backend.mu.Lock()
	h.backend.bookingStatus = http.StatusOK
	h.backend.mu.Unlock()

	if _, err := h.client.SubmitBooking(context.Background(), draft); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestSubmitMissingDates(t *testing.T) {
	h := loggedInHarness(t)

	if _, err := h.client.SubmitBooking(context.Background(), booking.NewDraft()); err == nil {
		t.Fatal("expected an error for a draft without a start date")
	}

	d := singleDraft(t, "2026-09-03")
	d.SetType(booking.Multiple)
	if _, err := h.client.SubmitBooking(context.Background(), d); err == nil {
		t.Fatal("expected an error for a range draft without an end date")
	}
}

func TestSubmitNilDraft(t *testing.T) {
	h := loggedInHarness(t)

	if _, err := h.client.SubmitBooking(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil draft")
	}
}

func stringContains(s, sub string) bool {
	if len(sub) == 0 {
		return true
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
