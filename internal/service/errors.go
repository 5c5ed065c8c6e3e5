package service

import "errors"

// ErrNotEnoughSeats is returned when a match would consume more seats
// than the offer has remaining at creation time.
var ErrNotEnoughSeats = errors.New("not enough seats available")

// ErrUnauthorized is returned when a presented guest token does not
// belong to the party required for the attempted action.  It is never
// a silent no-op; handlers map it to an explicit 400 response.
var ErrUnauthorized = errors.New("unauthorized")
