package model

import "time"

// Flight represents one scheduled flight leg offered for sale.  A
// round-trip booking session references two flights.  Legs are owned
// by the external catalog; this service only reads them to validate
// selections, so no mutating fields appear here.
//
// Fields:
//  ID             – primary key identifier.
//  FlightNumber   – public designator, e.g. "IR652".
//  Origin         – IATA code of the departure airport.
//  Destination    – IATA code of the arrival airport.
//  DepartsAt      – scheduled departure time.
//  ArrivesAt      – scheduled arrival time (must be after DepartsAt).
//  BaseFareCents  – fare in cents before seat adjustments and services.
//  Status         – current state of the leg (SCHEDULED, CANCELLED, FLOWN).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Flight struct {
    ID            uint64    // flights.id
    FlightNumber  string    // flights.flight_number
    Origin        string    // flights.origin
    Destination   string    // flights.destination
    DepartsAt     time.Time // flights.departs_at
    ArrivesAt     time.Time // flights.arrives_at
    BaseFareCents int64     // flights.base_fare_cents
    Status        string    // flights.status
    CreatedAt     time.Time // flights.created_at
    UpdatedAt     time.Time // flights.updated_at
}
