package booking

import "errors"

// ErrInvalidSelection indicates a malformed request: a leg the session
// does not recognise, a passenger index out of range, a category or
// quantity that makes no sense, or an offer that does not belong to the
// requested leg. These are client bugs, not races, and are never worth
// retrying unchanged. Races and absences reuse the repository
// sentinels (ErrSeatUnavailable, ErrOfferUnavailable,
// ErrSessionNotFound) so every layer compares against a single set.
var ErrInvalidSelection = errors.New("invalid selection")
