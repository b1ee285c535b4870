// Package booking holds the transient booking draft — type, dates, inclusive day
// count — and the static holiday set bookings are validated against.
//
// The draft mirrors the booking dialog lifecycle: opened, edited, submitted or
// cancelled. It is UI-local state and is not safe for concurrent mutation.
package booking
