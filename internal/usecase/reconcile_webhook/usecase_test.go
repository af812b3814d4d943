package reconcile_webhook

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	bookingStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
)

type fakeGateway struct{ signatureOK bool }

func (f *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return f.signatureOK
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
}

func (f *fakeBookingRepo) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.GatewayPaymentID != nil && *b.GatewayPaymentID == paymentID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.GatewayOrderID != nil && *b.GatewayOrderID == orderID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (f *fakeBookingRepo) AdvancePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.PaymentStatus = status
	if b.PaymentPaidAt == nil {
		b.PaymentPaidAt = &paidAt
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var bookingID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func newTestUseCase(t *testing.T, dueAmount int64) (*UseCase, *fakeBookingRepo) {
	t.Helper()

	orderID := "order_A1"
	paymentID := "pay_A1"
	repo := &fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{
		bookingID: {
			ID:               bookingID,
			SlotID:           100,
			Status:           domain.StatusBooked,
			PaymentStatus:    domain.PaymentPending,
			DueAmount:        dueAmount,
			GatewayOrderID:   &orderID,
			GatewayPaymentID: &paymentID,
		},
	}}

	uc := New(
		&fakeGateway{signatureOK: true},
		repo,
		fixedClock{now: time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	return uc, repo
}

const capturedPayload = `{
	"event": "payment.captured",
	"payload": {
		"payment": {
			"entity": {"id": "pay_A1", "order_id": "order_A1", "amount": 80000, "status": "captured"}
		}
	}
}`

const orderPaidPayload = `{
	"event": "order.paid",
	"payload": {
		"order": {
			"entity": {"id": "order_A1", "amount": 80000, "status": "paid"}
		}
	}
}`

func TestExecutePaymentCaptured(t *testing.T) {
	uc, repo := newTestUseCase(t, 0)

	result, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(capturedPayload),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, EventPaymentCaptured, result.Event)
	assert.Equal(t, bookingID, result.BookingID)
	assert.Equal(t, domain.PaymentPaid, result.PaymentStatus)

	b := repo.bookings[bookingID]
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	require.NotNil(t, b.PaymentPaidAt)
}

func TestExecutePaymentCapturedWithDue(t *testing.T) {
	// остался долг, значит оплачен только аванс
	uc, _ := newTestUseCase(t, 701)

	result, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(capturedPayload),
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartiallyPaid, result.PaymentStatus)
}

func TestExecuteReplayIdempotent(t *testing.T) {
	uc, repo := newTestUseCase(t, 0)
	req := &Request{Payload: []byte(capturedPayload), Signature: "sig"}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	paidAt := *repo.bookings[bookingID].PaymentPaidAt

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, paidAt, *repo.bookings[bookingID].PaymentPaidAt)
}

func TestExecuteOrderPaidFallbackLookup(t *testing.T) {
	uc, repo := newTestUseCase(t, 0)

	// платёжный идентификатор ещё не сохранён, ищем по заказу
	repo.bookings[bookingID].GatewayPaymentID = nil

	result, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(orderPaidPayload),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, EventOrderPaid, result.Event)
	assert.Equal(t, bookingID, result.BookingID)
}

func TestExecuteUnknownEventSkipped(t *testing.T) {
	uc, repo := newTestUseCase(t, 0)

	result, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(`{"event": "refund.processed", "payload": {}}`),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.False(t, result.Applied)
	assert.Equal(t, "refund.processed", result.Event)
	assert.Equal(t, domain.PaymentPending, repo.bookings[bookingID].PaymentStatus)
}

func TestExecuteInvalidSignature(t *testing.T) {
	uc, _ := newTestUseCase(t, 0)
	uc.gateway = &fakeGateway{signatureOK: false}

	_, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(capturedPayload),
		Signature: "bad",
	})
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestExecuteInvalidPayload(t *testing.T) {
	uc, _ := newTestUseCase(t, 0)

	_, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte("not json"),
		Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	// событие без сущности платежа
	_, err = uc.Execute(context.Background(), &Request{
		Payload:   []byte(`{"event": "payment.captured", "payload": {}}`),
		Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestExecuteBookingNotFound(t *testing.T) {
	uc, repo := newTestUseCase(t, 0)
	delete(repo.bookings, bookingID)

	_, err := uc.Execute(context.Background(), &Request{
		Payload:   []byte(capturedPayload),
		Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
