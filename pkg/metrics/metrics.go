package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Доменные метрики
	BookingsCreated   *prometheus.CounterVec // по источнику (online/manual)
	BookingConflicts  prometheus.Counter     // проигранные гонки за слот
	BookingsCancelled *prometheus.CounterVec // по роли (customer/owner)
	PaymentOrders     prometheus.Counter
	PaymentsVerified  *prometheus.CounterVec // по результату (ok/failed/mismatch)
	WebhookEvents     *prometheus.CounterVec // по результату (applied/ignored/rejected)
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "path"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: labels,
		}, []string{"source"}),

		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Allocation attempts that lost the slot race",
			ConstLabels: labels,
		}),

		BookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled",
			ConstLabels: labels,
		}, []string{"role"}),

		PaymentOrders: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payment_orders_created_total",
			Help:        "Total number of gateway payment orders opened",
			ConstLabels: labels,
		}),

		PaymentsVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_verified_total",
			Help:        "Payment verification attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),

		WebhookEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_webhook_events_total",
			Help:        "Gateway webhook deliveries by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

// IncBookingCreated учитывает созданное бронирование по источнику.
func (m *Metrics) IncBookingCreated(source string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(source).Inc()
}

// IncBookingConflict учитывает проигранную гонку за слот.
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

// IncBookingCancelled учитывает отмену бронирования по роли инициатора.
func (m *Metrics) IncBookingCancelled(role string) {
	if m == nil {
		return
	}
	m.BookingsCancelled.WithLabelValues(role).Inc()
}

// IncPaymentOrder учитывает открытый платёжный ордер.
func (m *Metrics) IncPaymentOrder() {
	if m == nil {
		return
	}
	m.PaymentOrders.Inc()
}

// IncPaymentVerified учитывает попытку верификации платежа.
func (m *Metrics) IncPaymentVerified(result string) {
	if m == nil {
		return
	}
	m.PaymentsVerified.WithLabelValues(result).Inc()
}

// IncWebhookEvent учитывает обработанное событие вебхука.
func (m *Metrics) IncWebhookEvent(result string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(result).Inc()
}
