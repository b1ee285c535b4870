package flows

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/feastline/mealbook/booking"
	"github.com/feastline/mealbook/internal/api"
)

// BookingErrors carries host-level sentinel errors used by the booking flow.
type BookingErrors struct {
	NotAuthenticated   error
	HolidayDate        error
	Unauthorized       error
	BookingFailed      error
	NotificationFailed error
}

// BookingDeps captures booking submission dependencies.
type BookingDeps struct {
	Errors BookingErrors

	IsHoliday func(date time.Time) bool
	Session   func() (userID, displayName string, ok bool)

	Create func(ctx context.Context, multiDay bool, req api.BookingRequest) (*api.Confirmation, error)
	Notify func(ctx context.Context, req api.NotificationRequest) error
}

// BookingOutcome is the flow-local submission result. NotificationErr reports
// the follow-up call independently; it is never folded into the booking error.
type BookingOutcome struct {
	Confirmation    *api.Confirmation
	Request         api.BookingRequest
	NotificationErr error
}

// RunBooking validates the start date against the holiday set, submits the
// booking to the endpoint matching its type, and on success fires exactly one
// best-effort notification. The holiday check short-circuits before any network
// call is made.
func RunBooking(ctx context.Context, start, end time.Time, multiDay bool, deps BookingDeps) (BookingOutcome, error) {
	if deps.IsHoliday(start) {
		return BookingOutcome{}, deps.Errors.HolidayDate
	}

	userID, displayName, ok := deps.Session()
	if !ok {
		return BookingOutcome{}, deps.Errors.NotAuthenticated
	}

	if !multiDay {
		end = start
	}

	req := api.BookingRequest{
		UserID:    userID,
		StartDate: start.Format(booking.DateLayout),
		EndDate:   end.Format(booking.DateLayout),
	}

	conf, err := deps.Create(ctx, multiDay, req)
	if err != nil {
		var status *api.StatusError
		if errors.As(err, &status) {
			if status.Code == http.StatusForbidden {
				return BookingOutcome{Request: req}, fmt.Errorf("%w: %v", deps.Errors.Unauthorized, err)
			}
			if status.Message != "" {
				return BookingOutcome{Request: req}, fmt.Errorf("%w: %s", deps.Errors.BookingFailed, status.Message)
			}
		}
		return BookingOutcome{Request: req}, fmt.Errorf("%w: %v", deps.Errors.BookingFailed, err)
	}

	outcome := BookingOutcome{Confirmation: conf, Request: req}

	notifyErr := deps.Notify(ctx, api.NotificationRequest{
		UserID:    userID,
		UserName:  displayName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if notifyErr != nil {
		outcome.NotificationErr = fmt.Errorf("%w: %v", deps.Errors.NotificationFailed, notifyErr)
	}

	return outcome, nil
}
