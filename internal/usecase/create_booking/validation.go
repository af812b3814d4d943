package create_booking

import (
	"fmt"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	switch req.Source {
	case domain.SourceOnline:
		if req.UserID == nil {
			return fmt.Errorf("%w: userID is required for online bookings", ErrInvalidInput)
		}

		if req.Payment.Mode != domain.PaymentModeFull && req.Payment.Mode != domain.PaymentModePartialAdvance {
			return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, req.Payment.Mode)
		}

		if req.Payment.PaidAmount <= 0 {
			return fmt.Errorf("%w: paidAmount must be positive", ErrInvalidInput)
		}
	case domain.SourceManual:
		if req.OwnerID == nil {
			return fmt.Errorf("%w: ownerID is required for manual bookings", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}

	return nil
}
