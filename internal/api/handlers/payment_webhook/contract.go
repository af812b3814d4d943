package payment_webhook

import (
	"context"

	reconcileWebhook "github.com/footbook/FB-GroundBookingService/internal/usecase/reconcile_webhook"
)

type ReconcileWebhookUseCase interface {
	Execute(ctx context.Context, req *reconcileWebhook.Request) (*reconcileWebhook.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
