package booking

import "errors"

// MsgEndBeforeStart is the client-facing message for an inverted or empty date range.
const MsgEndBeforeStart = "End date must be after start date."

var (
	ErrEndBeforeStart  = errors.New("end date must be after start date")
	ErrInvalidDate     = errors.New("dates must use YYYY-MM-DD")
	ErrListingNotFound = errors.New("listing not found")
	ErrNotFound        = errors.New("booking not found")
	ErrSelfBooking     = errors.New("cannot book your own listing")
	ErrForbidden       = errors.New("forbidden")
)
