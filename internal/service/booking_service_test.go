package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConfirm_RejectsBeforeTouchingStorage(t *testing.T) {
	// a nil *gorm.DB from GetDB would panic if any case reached the transaction
	svc := NewBookingService(fixtureRepos(), BookingOptions{Window: testWindow()})
	ctx := context.Background()

	tests := []struct {
		name string
		req  ConfirmRequest
		err  error
	}{
		{"past date", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "A", DestinationCode: "C", JourneyDate: "2026-10-01"}, ErrInvalidDate},
		{"beyond window", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "A", DestinationCode: "C", JourneyDate: "2026-11-05"}, ErrInvalidDate},
		{"garbage date", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "A", DestinationCode: "C", JourneyDate: "tomorrow"}, ErrInvalidDate},
		{"unknown origin", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "Q", DestinationCode: "C", JourneyDate: "2026-10-21"}, ErrInvalidStation},
		{"unknown destination", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "A", DestinationCode: "Q", JourneyDate: "2026-10-21"}, ErrInvalidStation},
		{"same station", ConfirmRequest{UserID: "u1", TrainID: 1, OriginCode: "A", DestinationCode: "a", JourneyDate: "2026-10-21"}, ErrRouteDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, err := svc.Confirm(ctx, tt.req)
			assert.Nil(t, booking)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGetBooking(t *testing.T) {
	repos := fixtureRepos()
	repos.Bookings = &mockBookingRepo{
		findByPNRFn: func(ctx context.Context, pnr string) (*models.Booking, error) {
			if pnr != "1234567890" {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.Booking{PNR: pnr, UserID: "owner", PaymentStatus: models.PaymentPending}, nil
		},
	}
	svc := NewBookingService(repos, BookingOptions{Window: testWindow()})
	ctx := context.Background()

	b, err := svc.GetBooking(ctx, "owner", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", b.PNR)

	_, err = svc.GetBooking(ctx, "someone-else", "1234567890")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetBooking(ctx, "owner", "0000000000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBooking_RepoError(t *testing.T) {
	repos := fixtureRepos()
	repos.Bookings = &mockBookingRepo{
		findByPNRFn: func(ctx context.Context, pnr string) (*models.Booking, error) {
			return nil, errors.New("db connection failed")
		},
	}
	svc := NewBookingService(repos, BookingOptions{Window: testWindow()})

	_, err := svc.GetBooking(context.Background(), "owner", "1234567890")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
	assert.False(t, errors.Is(err, ErrBookingNotFound))
}

func TestTicket_RequiresPayment(t *testing.T) {
	status := models.PaymentPending
	repos := fixtureRepos()
	repos.Bookings = &mockBookingRepo{
		findByPNRFn: func(ctx context.Context, pnr string) (*models.Booking, error) {
			return &models.Booking{PNR: pnr, UserID: "owner", PaymentStatus: status}, nil
		},
	}
	svc := NewBookingService(repos, BookingOptions{Window: testWindow()})
	ctx := context.Background()

	_, err := svc.Ticket(ctx, "owner", "1234567890")
	assert.ErrorIs(t, err, ErrPaymentRequired)

	status = models.PaymentSuccess
	b, err := svc.Ticket(ctx, "owner", "1234567890")
	require.NoError(t, err)
	assert.True(t, b.Paid())
}

func TestRandomReferences(t *testing.T) {
	refs := RandomReferences()
	pnr := regexp.MustCompile(`^[0-9]{10}$`)
	txn := regexp.MustCompile(`^TXN[0-9]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p := refs.PNR()
		assert.Regexp(t, pnr, p)
		assert.Regexp(t, txn, refs.TransactionID())
		seen[p] = true
	}
	// 200 draws from 10^10 values
	assert.Greater(t, len(seen), 190)
}

func TestBookingWindow(t *testing.T) {
	w := testWindow()

	d, err := w.Parse(" 2026-10-25 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-25", d.Format("2006-01-02"))

	assert.ErrorIs(t, w.Check(testNow.AddDate(0, 0, -1)), ErrInvalidDate)
	assert.NoError(t, w.Check(testNow))
	assert.NoError(t, w.Check(testNow.AddDate(0, 0, 10)))
	assert.ErrorIs(t, w.Check(testNow.AddDate(0, 0, 11)), ErrInvalidDate)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, in := range []string{"bkash", "Nagad", " CARD ", "cash"} {
		_, ok := models.ParsePaymentMethod(in)
		assert.True(t, ok, in)
	}
	_, ok := models.ParsePaymentMethod("paypal")
	assert.False(t, ok)
}
