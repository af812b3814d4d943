package verify_payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	groundStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotStorage "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
	"github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

type fakeGateway struct {
	orders      map[string]*razorpay.Order
	payments    map[string]*razorpay.Payment
	signatureOK bool
}

func (f *fakeGateway) FetchOrder(ctx context.Context, orderID string) (*razorpay.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	copied := *o
	return &copied, nil
}

func (f *fakeGateway) FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, errors.New("payment not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return f.signatureOK
}

type fakeAllocator struct {
	lastReq *create_booking.Request
	resp    *create_booking.Response
	err     error
}

func (f *fakeAllocator) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeSlotRepo struct{ slots map[int64]*domain.Slot }

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

type fakeGroundRepo struct{ grounds map[int64]*domain.Ground }

func (f *fakeGroundRepo) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	g, ok := f.grounds[id]
	if !ok {
		return nil, groundStorage.ErrGroundNotFound
	}
	copied := *g
	return &copied, nil
}

type fakeActivityRepo struct{ entries []*domain.ActivityLog }

func (f *fakeActivityRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *UseCase
	gateway   *fakeGateway
	allocator *fakeAllocator
	activity  *fakeActivityRepo
}

// Стенд: оплаченный полностью заказ на ночной слот (800),
// ground 1, slot 100, user 7
func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)

	gateway := &fakeGateway{
		signatureOK: true,
		orders: map[string]*razorpay.Order{
			"order_A1": {
				ID:       "order_A1",
				Amount:   80000,
				Currency: "INR",
				Status:   "paid",
				Notes: map[string]string{
					"slot_id":      "100",
					"user_id":      "7",
					"payment_mode": "FULL",
				},
			},
		},
		payments: map[string]*razorpay.Payment{
			"pay_A1": {
				ID:      "pay_A1",
				OrderID: "order_A1",
				Amount:  80000,
				Status:  razorpay.PaymentStatusCaptured,
			},
		},
	}

	allocator := &fakeAllocator{
		resp: &create_booking.Response{
			BookingID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			SlotID:        100,
			GroundID:      1,
			GroundName:    "Arena One",
			Date:          time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			StartTime:     types.MustTimeString("18:00"),
			EndTime:       types.MustTimeString("19:00"),
			TotalAmount:   800,
			PlatformFee:   3,
			OwnerPayout:   797,
			PaidAmount:    800,
			DueAmount:     0,
			PaymentMode:   domain.PaymentModeFull,
			PaymentStatus: domain.PaymentPaid,
			Source:        domain.SourceOnline,
			CreatedAt:     now,
		},
	}

	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		100: {
			ID:        100,
			GroundID:  1,
			Date:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("18:00"),
			EndTime:   types.MustTimeString("19:00"),
		},
	}}
	grounds := &fakeGroundRepo{grounds: map[int64]*domain.Ground{
		1: {ID: 1, OwnerID: 10, Name: "Arena One", DayPrice: 500, NightPrice: 800},
	}}
	activity := &fakeActivityRepo{}

	uc := New(
		gateway,
		allocator,
		slots,
		grounds,
		activity,
		Config{AdvanceAmount: 99, Location: time.UTC},
		fixedClock{now: now},
		nopLogger{},
	)

	return &fixture{uc: uc, gateway: gateway, allocator: allocator, activity: activity}
}

func validRequest() *Request {
	return &Request{
		UserID:        7,
		CustomerName:  "Rahul",
		CustomerPhone: "+911234567890",
		SlotID:        100,
		PaymentMode:   domain.PaymentModeFull,
		OrderID:       "order_A1",
		PaymentID:     "pay_A1",
		Signature:     "sig",
	}
}

func TestExecuteVerified(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.SlotID)
	assert.Equal(t, "Arena One", resp.GroundName)
	assert.Equal(t, int64(800), resp.PaidAmount)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)

	// захвату слота передаются реквизиты платежа и сумма в рупиях
	req := f.allocator.lastReq
	require.NotNil(t, req)
	assert.Equal(t, domain.SourceOnline, req.Source)
	assert.Equal(t, int64(800), req.Payment.PaidAmount)
	require.NotNil(t, req.Payment.GatewayPaymentID)
	assert.Equal(t, "pay_A1", *req.Payment.GatewayPaymentID)
	require.NotNil(t, req.Payment.PaidAt)
}

func TestExecutePartialAdvanceAmount(t *testing.T) {
	f := newFixture(t)
	f.gateway.orders["order_A1"].Amount = 9900
	f.gateway.orders["order_A1"].Notes["payment_mode"] = "PARTIAL_ADVANCE"
	f.gateway.payments["pay_A1"].Amount = 9900

	req := validRequest()
	req.PaymentMode = domain.PaymentModePartialAdvance

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(99), f.allocator.lastReq.Payment.PaidAmount)
	assert.Equal(t, domain.PaymentModePartialAdvance, f.allocator.lastReq.Payment.Mode)
}

func TestExecuteInvalidSignature(t *testing.T) {
	f := newFixture(t)
	f.gateway.signatureOK = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSignatureInvalid)
	assert.Nil(t, f.allocator.lastReq)
}

func TestExecuteGatewayFailure(t *testing.T) {
	f := newFixture(t)
	delete(f.gateway.orders, "order_A1")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGatewayFailure)
}

func TestExecuteForeignPayment(t *testing.T) {
	f := newFixture(t)
	f.gateway.payments["pay_A1"].OrderID = "order_B2"

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestExecutePaymentNotCaptured(t *testing.T) {
	f := newFixture(t)
	f.gateway.payments["pay_A1"].Status = "failed"

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentNotCaptured)
}

func TestExecuteMetadataMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, req *Request)
	}{
		{"wrong slot", func(f *fixture, req *Request) {
			f.gateway.orders["order_A1"].Notes["slot_id"] = "101"
		}},
		{"wrong user", func(f *fixture, req *Request) {
			f.gateway.orders["order_A1"].Notes["user_id"] = "8"
		}},
		{"garbage mode", func(f *fixture, req *Request) {
			f.gateway.orders["order_A1"].Notes["payment_mode"] = "CRYPTO"
		}},
		{"mode conflict", func(f *fixture, req *Request) {
			req.PaymentMode = domain.PaymentModePartialAdvance
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrMetadataMismatch)
			assert.Nil(t, f.allocator.lastReq)
		})
	}
}

func TestExecuteAmountMismatch(t *testing.T) {
	f := newFixture(t)

	// заказ создавался по старому тарифу, с тех пор цена выросла
	f.gateway.orders["order_A1"].Amount = 70000
	f.gateway.payments["pay_A1"].Amount = 70000

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestExecuteLostRaceAfterPayment(t *testing.T) {
	f := newFixture(t)
	f.allocator.err = create_booking.ErrSlotUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTakenAfterPayment)

	// инцидент попадает в журнал с реквизитами платежа
	require.Len(t, f.activity.entries, 1)
	entry := f.activity.entries[0]
	assert.Equal(t, domain.ActionAdminAction, entry.Action)
	require.NotNil(t, entry.Meta)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*entry.Meta), &meta))
	assert.Equal(t, "slot taken after payment", meta["reason"])
	assert.Equal(t, "pay_A1", meta["payment_id"])
}

func TestExecuteAllocatorErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name     string
		allocErr error
		want     error
	}{
		{"expired", create_booking.ErrSlotExpired, ErrSlotExpired},
		{"quota", create_booking.ErrQuotaExceeded, ErrQuotaExceeded},
		{"busy", create_booking.ErrStoreBusy, ErrStoreBusy},
		{"missing slot", create_booking.ErrSlotNotFound, ErrSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allocator.err = tt.allocErr

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.activity.entries)
		})
	}
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SlotID = 0
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Signature = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CustomerName = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
