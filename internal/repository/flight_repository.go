// Package repository contains read-only data access for the flight
// catalog. Legs are owned by an external catalog service; this module
// only verifies that a leg exists and is still sellable before letting
// a session attach holds to it.
package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

// FlightRepo manages catalog lookups for scheduled flight legs.
type FlightRepo struct {
    db *sql.DB
}

// NewFlightRepo returns a new FlightRepo bound to the provided database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// GetByID loads one scheduled leg. It returns ErrFlightNotFound when no
// row exists.
func (r *FlightRepo) GetByID(ctx context.Context, flightID uint64) (*model.Flight, error) {
    const q = `SELECT id, flight_number, origin, destination, departs_at, arrives_at,
                      base_fare_cents, status, created_at, updated_at
               FROM flights WHERE id = ?`
    var f model.Flight
    err := r.db.QueryRowContext(ctx, q, flightID).Scan(
        &f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartsAt, &f.ArrivesAt,
        &f.BaseFareCents, &f.Status, &f.CreatedAt, &f.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrFlightNotFound
    }
    if err != nil {
        return nil, err
    }
    return &f, nil
}
