// Package repository contains read-only catalog access for ancillary
// service offers. Mutations to the sold counter go exclusively through
// ServiceInventoryRepo; this repository only answers what an offer is
// and what it currently costs.
package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

// ServiceOfferRepo manages catalog lookups for service offers.
type ServiceOfferRepo struct {
    db *sql.DB
}

// NewServiceOfferRepo returns a new ServiceOfferRepo bound to the provided database.
func NewServiceOfferRepo(db *sql.DB) *ServiceOfferRepo { return &ServiceOfferRepo{db: db} }

// GetByID loads one offer including its current sold counter. It
// returns ErrOfferNotFound when no row exists. The counter is a
// point-in-time view; only Reserve decides whether quantity actually
// fits.
func (r *ServiceOfferRepo) GetByID(ctx context.Context, offerID uint64) (*model.ServiceOffer, error) {
    const q = `SELECT id, flight_id, category, name, unit_price_cents, free_quantity,
                      capacity, sold, status, created_at, updated_at
               FROM service_offers WHERE id = ?`
    var o model.ServiceOffer
    err := r.db.QueryRowContext(ctx, q, offerID).Scan(
        &o.ID, &o.FlightID, &o.Category, &o.Name, &o.UnitPriceCents, &o.FreeQuantity,
        &o.Capacity, &o.Sold, &o.Status, &o.CreatedAt, &o.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrOfferNotFound
    }
    if err != nil {
        return nil, err
    }
    return &o, nil
}

// ListByFlight returns every offer sold for one leg, grouped by
// category for display.
func (r *ServiceOfferRepo) ListByFlight(ctx context.Context, flightID uint64) ([]model.ServiceOffer, error) {
    const q = `SELECT id, flight_id, category, name, unit_price_cents, free_quantity,
                      capacity, sold, status, created_at, updated_at
               FROM service_offers WHERE flight_id = ? ORDER BY category, id`
    rows, err := r.db.QueryContext(ctx, q, flightID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var offers []model.ServiceOffer
    for rows.Next() {
        var o model.ServiceOffer
        if err := rows.Scan(
            &o.ID, &o.FlightID, &o.Category, &o.Name, &o.UnitPriceCents, &o.FreeQuantity,
            &o.Capacity, &o.Sold, &o.Status, &o.CreatedAt, &o.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        offers = append(offers, o)
    }
    return offers, rows.Err()
}
