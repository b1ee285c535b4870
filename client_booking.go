package mealbook

import (
	"context"
	"errors"
	"time"

	"github.com/feastline/mealbook/booking"
	"github.com/feastline/mealbook/internal/flows"
)

// SubmitBooking submits an open draft. The start date is checked against the
// holiday set before any network call; on success exactly one best-effort
// notification is fired and its failure is reported through
// [BookingResult.NotificationErr] without invalidating the booking.
//
// A failed submission reopens the draft so the same dialog can retry; a
// successful one closes it.
//
// SubmitBooking may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) SubmitBooking(ctx context.Context, draft *booking.Draft) (*BookingResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, errors.New("draft must not be nil")
	}

	if err := draft.BeginSubmit(); err != nil {
		return nil, err
	}
	ctx = ensureRequestID(ctx)

	outcome, err := c.submitDraft(ctx, draft)
	draft.FinishSubmit(err == nil)
	if err != nil {
		return nil, err
	}

	result := &BookingResult{
		StartDate:       outcome.Request.StartDate,
		EndDate:         outcome.Request.EndDate,
		Days:            draft.Days(),
		NotificationErr: outcome.NotificationErr,
	}
	if outcome.Confirmation != nil {
		result.Confirmation = BookingConfirmation{
			BookingID: outcome.Confirmation.BookingID,
			Status:    outcome.Confirmation.Status,
			Message:   outcome.Confirmation.Message,
			Raw:       outcome.Confirmation.Raw,
		}
	}
	return result, nil
}

func (c *Client) submitDraft(ctx context.Context, draft *booking.Draft) (flows.BookingOutcome, error) {
	start := draft.StartDate()
	if start.IsZero() {
		return flows.BookingOutcome{}, errors.New("start date must be set")
	}
	multiDay := draft.Type() == booking.Multiple
	if multiDay && draft.EndDate().IsZero() {
		return flows.BookingOutcome{}, errors.New("end date must be set for a multi-day booking")
	}

	if err := draft.ValidateWindow(time.Now(), c.config.Booking.MaxAdvanceDays); err != nil {
		c.metricInc(MetricBookingFailure)
		c.auditBookingFailure(ctx, draft, err)
		return flows.BookingOutcome{}, err
	}

	began := time.Now()
	outcome, err := flows.RunBooking(ctx, start, draft.EndDate(), multiDay, c.flows.Booking)
	c.metricObserve(MetricSubmitLatency, time.Since(began))

	if err != nil {
		switch {
		case errors.Is(err, ErrHolidayDate):
			c.metricInc(MetricBookingHolidayRejected)
		case errors.Is(err, ErrUnauthorized):
			c.metricInc(MetricBookingUnauthorized)
		default:
			c.metricInc(MetricBookingFailure)
		}
		c.auditBookingFailure(ctx, draft, err)
		return flows.BookingOutcome{}, err
	}

	info := c.Session()

	c.metricInc(MetricBookingSuccess)
	c.emitAudit(ctx, auditEventBookingSubmitted, true, info.UserID, info.Email, nil, func() map[string]string {
		return bookingMetadata(draft, outcome.Request.StartDate, outcome.Request.EndDate)
	})

	if outcome.NotificationErr != nil {
		c.metricInc(MetricNotificationFailure)
		c.emitAudit(ctx, auditEventNotificationFailure, false, info.UserID, info.Email, outcome.NotificationErr, nil)
	} else {
		c.metricInc(MetricNotificationSuccess)
		c.emitAudit(ctx, auditEventNotificationSent, true, info.UserID, info.Email, nil, nil)
	}

	return outcome, nil
}

func (c *Client) auditBookingFailure(ctx context.Context, draft *booking.Draft, err error) {
	eventType := auditEventBookingFailure
	switch {
	case errors.Is(err, ErrHolidayDate):
		eventType = auditEventBookingHolidayRejected
	case errors.Is(err, ErrUnauthorized):
		eventType = auditEventBookingUnauthorized
	}

	info := c.Session()
	c.emitAudit(ctx, eventType, false, info.UserID, info.Email, err, func() map[string]string {
		start, end := "", ""
		if !draft.StartDate().IsZero() {
			start = draft.StartDate().Format(booking.DateLayout)
		}
		if !draft.EndDate().IsZero() {
			end = draft.EndDate().Format(booking.DateLayout)
		}
		return bookingMetadata(draft, start, end)
	})
}

func bookingMetadata(draft *booking.Draft, start, end string) map[string]string {
	return map[string]string{
		"type":       draft.Type().String(),
		"start_date": start,
		"end_date":   end,
	}
}
