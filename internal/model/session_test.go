package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestSessionLive(t *testing.T) {
    now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
    doc := BookingSession{ExpiresAt: now.Add(time.Minute)}

    assert.True(t, doc.Live(now))
    assert.False(t, doc.Live(now.Add(time.Minute)))
    assert.False(t, doc.Live(now.Add(2*time.Minute)))
}

func TestSessionLookups(t *testing.T) {
    doc := BookingSession{
        Passengers: 2,
        Legs: []LegBooking{
            {
                FlightID: 1,
                Seats:    []SeatSelection{{PassengerIndex: 1, SeatID: 102}},
                Services: []ServiceSelection{{PassengerIndex: 0, Category: ServiceCategoryMeal, OfferID: 201}},
            },
        },
    }

    assert.NotNil(t, doc.Leg(1))
    assert.Nil(t, doc.Leg(2))

    leg := doc.Leg(1)
    assert.Nil(t, leg.SeatFor(0))
    assert.Equal(t, uint64(102), leg.SeatFor(1).SeatID)
    assert.Equal(t, uint64(201), leg.ServiceFor(0, ServiceCategoryMeal).OfferID)
    assert.Nil(t, leg.ServiceFor(0, ServiceCategoryBaggage))

    assert.True(t, doc.HasHolds())
    assert.False(t, (&BookingSession{Legs: []LegBooking{{FlightID: 1}}}).HasHolds())
}

func TestSeatLabel(t *testing.T) {
    s := Seat{RowLabel: "A", SeatNumber: 12}
    assert.Equal(t, "12A", s.Label())
}

func TestOfferRemaining(t *testing.T) {
    cap := uint32(5)
    limited := ServiceOffer{Capacity: &cap, Sold: 3}
    unlimited := ServiceOffer{}

    assert.Equal(t, int64(2), limited.Remaining())
    assert.Equal(t, int64(-1), unlimited.Remaining())

    limited.Sold = 5
    assert.Equal(t, int64(0), limited.Remaining())
}
