// Package queue defines message payloads exchanged over the message broker.
package queue

// Close reasons carried on SessionClosedEvent. Converted sessions are
// closed by the (external) booking-confirmation step after it consumed
// the session snapshot.
const (
    CloseReasonCancelled = "cancelled"
    CloseReasonExpired   = "expired"
    CloseReasonConverted = "converted"
)

// SessionClosedEvent is published whenever a booking session leaves the
// system, whether cancelled explicitly, reclaimed by the reaper or
// converted into a permanent booking. It carries enough information for
// downstream consumers to log, notify, or feed analytics without
// querying the session store (which no longer has the document).
type SessionClosedEvent struct {
    SessionID        string `json:"session_id"`
    OwnerID          string `json:"owner_id,omitempty"`
    Reason           string `json:"reason"`
    SeatsReleased    int    `json:"seats_released"`
    ServicesReleased int    `json:"services_released"`
    GrandTotalCents  int64  `json:"grand_total_cents"`
    ClosedAt         string `json:"closed_at"`
}
