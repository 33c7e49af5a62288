package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_CanBeCancelled(t *testing.T) {
	tests := []struct {
		name string
		res  Reservation
		want bool
	}{
		{"succeeded", Reservation{PaymentStatus: StatusSucceeded}, true},
		{"prepared", Reservation{PaymentStatus: StatusPrepared}, false},
		{"already canceled", Reservation{PaymentStatus: StatusSucceeded, Canceled: CanceledByUser}, false},
		{"canceled status", Reservation{PaymentStatus: StatusCanceled}, false},
		{"uncancelable", Reservation{PaymentStatus: StatusSucceeded, Uncancelable: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.CanBeCancelled())
		})
	}
}

func TestReservation_CanBeRescheduled(t *testing.T) {
	// uncancelable blocks cancel but not reschedule
	res := Reservation{PaymentStatus: StatusSucceeded, Uncancelable: true}
	assert.True(t, res.CanBeRescheduled())

	res.Canceled = CanceledByPhoneCall
	assert.False(t, res.CanBeRescheduled())

	assert.False(t, (&Reservation{PaymentStatus: StatusPrepared}).CanBeRescheduled())
}

func TestReservation_HoldsSlot(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	ttl := PreparedTTL(30)

	tests := []struct {
		name string
		res  Reservation
		want bool
	}{
		{"succeeded holds", Reservation{PaymentStatus: StatusSucceeded}, true},
		{"succeeded canceled releases", Reservation{PaymentStatus: StatusSucceeded, Canceled: CanceledByAdmin}, false},
		{"prepared within window holds", Reservation{
			PaymentStatus:  StatusPrepared,
			DateOfPurchase: now.Add(-29 * time.Minute),
		}, true},
		{"prepared at exact window boundary holds", Reservation{
			PaymentStatus:  StatusPrepared,
			DateOfPurchase: now.Add(-30 * time.Minute),
		}, true},
		{"prepared past window releases", Reservation{
			PaymentStatus:  StatusPrepared,
			DateOfPurchase: now.Add(-31 * time.Minute),
		}, false},
		{"canceled status releases", Reservation{PaymentStatus: StatusCanceled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.HoldsSlot(now, ttl))
		})
	}
}

func TestPriceFor(t *testing.T) {
	price, ok := PriceFor(2, 1)
	assert.True(t, ok)
	assert.Greater(t, price, 0.0)

	_, ok = PriceFor(7, 1)
	assert.False(t, ok)

	_, ok = PriceFor(0, 0)
	assert.False(t, ok)

	// more tubs than a group can use is not a sellable combination
	_, ok = PriceFor(1, 3)
	assert.False(t, ok)
}
