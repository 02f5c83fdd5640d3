// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking coordinators and handlers to distinguish between different
// failure scenarios without inspecting driver-specific errors. For
// example, ErrSeatUnavailable signals that a conditional seat transition
// matched zero rows because another session won the race, which is an
// expected outcome rather than a storage failure.
package repository

import "errors"

// ErrFlightNotFound indicates that a flight leg was not located in the DB.
var ErrFlightNotFound = errors.New("flight not found")

// ErrSeatNotFound indicates that a seat row does not exist at all, as
// opposed to existing but being unacquirable.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatUnavailable is returned when a conditional block affected zero
// rows: the seat is held by another session, already booked, or under
// maintenance. Callers should prompt re-selection, not retry in place.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrOfferNotFound indicates that a service offer was not located in the DB.
var ErrOfferNotFound = errors.New("service offer not found")

// ErrOfferUnavailable is returned when a conditional reserve affected
// zero rows because the requested quantity would exceed the offer's
// remaining capacity.
var ErrOfferUnavailable = errors.New("service offer unavailable")

// ErrSessionNotFound indicates that no session document exists under the
// given id, or that the stored document has already expired.
var ErrSessionNotFound = errors.New("session not found")
