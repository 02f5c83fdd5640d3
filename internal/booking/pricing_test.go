package booking

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

func TestComputeTotalsEmptySession(t *testing.T) {
    doc := &model.BookingSession{ID: "s1", Passengers: 2, Legs: []model.LegBooking{{FlightID: 1}}}

    totals := ComputeTotals(doc)

    assert.Equal(t, model.PriceBreakdown{}, totals)
}

func TestComputeTotalsSumsSeatsAndServices(t *testing.T) {
    doc := &model.BookingSession{
        ID:         "s1",
        Passengers: 2,
        Legs: []model.LegBooking{
            {
                FlightID: 1,
                Seats: []model.SeatSelection{
                    {PassengerIndex: 0, SeatID: 101, PriceAdjustmentCents: 50000},
                    {PassengerIndex: 1, SeatID: 102, PriceAdjustmentCents: 0},
                },
                Services: []model.ServiceSelection{
                    {PassengerIndex: 0, Category: model.ServiceCategoryMeal, Quantity: 1, UnitPriceCents: 180000, SubtotalCents: 180000},
                },
            },
            {
                FlightID: 2,
                Seats: []model.SeatSelection{
                    {PassengerIndex: 0, SeatID: 201, PriceAdjustmentCents: 25000},
                },
            },
        },
    }

    totals := ComputeTotals(doc)

    assert.Equal(t, int64(75000), totals.SeatChargesCents)
    assert.Equal(t, int64(180000), totals.ServiceChargesCents)
    assert.Equal(t, int64(255000), totals.GrandTotalCents)

    // Deterministic over an unchanged document.
    assert.Equal(t, totals, ComputeTotals(doc))
}

func TestLegSubtotal(t *testing.T) {
    leg := &model.LegBooking{
        FlightID: 1,
        Seats:    []model.SeatSelection{{PriceAdjustmentCents: 50000}},
        Services: []model.ServiceSelection{{SubtotalCents: 90000}},
    }

    assert.Equal(t, int64(140000), LegSubtotal(leg))
}

func TestServiceSubtotalFreeEntitlement(t *testing.T) {
    offer := &model.ServiceOffer{UnitPriceCents: 90000, FreeQuantity: 1}

    assert.Equal(t, int64(0), serviceSubtotal(offer, 1))
    assert.Equal(t, int64(90000), serviceSubtotal(offer, 2))
    assert.Equal(t, int64(0), serviceSubtotal(offer, 0))
}
