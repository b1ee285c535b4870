package booking

import (
	"errors"
	"math"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// ErrDateOutOfWindow is an exported constant or variable used by the booking client.
var ErrDateOutOfWindow = errors.New("date outside booking window")

// ErrDraftClosed is an exported constant or variable used by the booking client.
var ErrDraftClosed = errors.New("booking draft is closed")

// Type selects between a single-day and a multi-day booking.
type Type uint8

const (
	// Single is an exported constant or variable used by the booking client.
	Single Type = iota
	// Multiple is an exported constant or variable used by the booking client.
	Multiple
)

// String describes the string operation and its observable behavior.
func (t Type) String() string {
	if t == Multiple {
		return "multiple"
	}
	return "single"
}

// State is the draft lifecycle position.
type State uint8

const (
	// StateClosed is an exported constant or variable used by the booking client.
	StateClosed State = iota
	// StateOpen is an exported constant or variable used by the booking client.
	StateOpen
	// StateSubmitting is an exported constant or variable used by the booking client.
	StateSubmitting
)

// Draft is the transient reservation being assembled before submission.
//
// Draft instances belong to a single booking dialog and are not safe for
// concurrent use.
type Draft struct {
	state Type
	phase State

	start time.Time
	end   time.Time

	days int
}

// NewDraft opens a fresh single-day draft, the dialog's initial state.
func NewDraft() *Draft {
	return &Draft{
		state: Single,
		phase: StateOpen,
		days:  1,
	}
}

// Phase returns the draft's lifecycle position.
func (d *Draft) Phase() State {
	return d.phase
}

// Cancel closes the draft. It does not abort an in-flight submission.
func (d *Draft) Cancel() {
	d.phase = StateClosed
}

// Type returns the current booking type.
func (d *Draft) Type() Type {
	return d.state
}

// SetType switches the booking type. Switching to Single clears the end date and
// forces the day count to 1; switching to Multiple recomputes it from whatever
// dates are set.
func (d *Draft) SetType(t Type) {
	d.state = t
	if t == Single {
		d.end = time.Time{}
		d.days = 1
		return
	}
	d.recount()
}

// SetStartDate updates the start date (normalized to a calendar day) and
// recomputes the day count.
func (d *Draft) SetStartDate(date time.Time) {
	d.start = truncateToDay(date)
	d.recount()
}

// SetEndDate updates the end date and recomputes the day count. For Single
// drafts the value is retained but the count stays 1.
func (d *Draft) SetEndDate(date time.Time) {
	d.end = truncateToDay(date)
	d.recount()
}

// StartDate returns the start date, zero when unset.
func (d *Draft) StartDate() time.Time {
	return d.start
}

// EndDate returns the effective end date: the start date for Single drafts, the
// chosen end date otherwise.
func (d *Draft) EndDate() time.Time {
	if d.state == Single {
		return d.start
	}
	return d.end
}

// Days returns the inclusive day count currently selected.
func (d *Draft) Days() int {
	return d.days
}

// recount applies the day-count rule: Single is always 1; Multiple is
// ceil(|end-start| in days)+1, or 0 while either date is unset. The absolute
// difference tolerates an end date picked before the start date.
func (d *Draft) recount() {
	if d.state == Single {
		d.days = 1
		return
	}
	if d.start.IsZero() || d.end.IsZero() {
		d.days = 0
		return
	}
	diff := math.Abs(d.end.Sub(d.start).Hours() / 24)
	d.days = int(math.Ceil(diff)) + 1
}

// ValidateWindow checks the draft dates against the dialog's booking window:
// the start date may not precede today and may not lie more than maxAdvanceDays
// ahead; the end date is bounded the same way. maxAdvanceDays <= 0 disables the
// check.
func (d *Draft) ValidateWindow(now time.Time, maxAdvanceDays int) error {
	if maxAdvanceDays <= 0 {
		return nil
	}
	today := truncateToDay(now)
	limit := today.AddDate(0, 0, maxAdvanceDays)

	for _, date := range []time.Time{d.start, d.EndDate()} {
		if date.IsZero() {
			continue
		}
		if date.Before(today) || date.After(limit) {
			return ErrDateOutOfWindow
		}
	}
	return nil
}

// BeginSubmit moves the draft into the submitting phase; the engine calls this
// before issuing the booking request.
func (d *Draft) BeginSubmit() error {
	if d.phase != StateOpen {
		return ErrDraftClosed
	}
	d.phase = StateSubmitting
	return nil
}

// FinishSubmit closes the draft after a successful submission. A failed attempt
// reopens the dialog so the user can resubmit.
func (d *Draft) FinishSubmit(succeeded bool) {
	if succeeded {
		d.phase = StateClosed
		return
	}
	d.phase = StateOpen
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
