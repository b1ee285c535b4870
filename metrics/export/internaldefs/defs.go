package internaldefs

import (
	mealbook "github.com/feastline/mealbook"
)

// CounterDef defines a public type used by mealbook APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   mealbook.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by mealbook APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   mealbook.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the booking client.
var CounterDefs = []CounterDef{
	{ID: mealbook.MetricLoginSuccess, Name: "mealbook_login_success_total", Help: "Successful login attempts."},
	{ID: mealbook.MetricLoginFailure, Name: "mealbook_login_failure_total", Help: "Failed login attempts."},
	{ID: mealbook.MetricRegistrationSuccess, Name: "mealbook_registration_success_total", Help: "Successful registrations."},
	{ID: mealbook.MetricRegistrationFailure, Name: "mealbook_registration_failure_total", Help: "Failed registrations."},
	{ID: mealbook.MetricLogout, Name: "mealbook_logout_total", Help: "Logout operations."},
	{ID: mealbook.MetricSessionRestored, Name: "mealbook_session_restored_total", Help: "Sessions restored from the persisted fields."},
	{ID: mealbook.MetricSessionRestoreIncomplete, Name: "mealbook_session_restore_incomplete_total", Help: "Restore attempts that found an incomplete field set."},
	{ID: mealbook.MetricEmailUpdated, Name: "mealbook_email_updated_total", Help: "Session email updates."},
	{ID: mealbook.MetricBookingSuccess, Name: "mealbook_booking_success_total", Help: "Confirmed bookings."},
	{ID: mealbook.MetricBookingFailure, Name: "mealbook_booking_failure_total", Help: "Failed booking submissions."},
	{ID: mealbook.MetricBookingHolidayRejected, Name: "mealbook_booking_holiday_rejected_total", Help: "Bookings rejected locally for falling on a holiday."},
	{ID: mealbook.MetricBookingUnauthorized, Name: "mealbook_booking_unauthorized_total", Help: "Bookings rejected by the backend with 403."},
	{ID: mealbook.MetricNotificationSuccess, Name: "mealbook_notification_success_total", Help: "Successful post-booking notifications."},
	{ID: mealbook.MetricNotificationFailure, Name: "mealbook_notification_failure_total", Help: "Failed post-booking notifications."},
}

// HistogramDefs is an exported constant or variable used by the booking client.
var HistogramDefs = []HistogramDef{
	{ID: mealbook.MetricSubmitLatency, Name: "mealbook_submit_latency_seconds", Help: "Booking submission latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the booking client.
// The final core bucket is +Inf and is represented by the histogram count.
var HistogramBounds = []float64{
	0.005,
	0.01,
	0.025,
	0.05,
	0.1,
	0.25,
	0.5,
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed core
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
