package notifier

// Notification сообщение для внешнего сервиса доставки уведомлений.
// Публикуется в topic exchange, доставку выполняет отдельный consumer
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Routing keys для topic exchange уведомлений
const (
	RouteBookingCreated   = "notify.booking.created"
	RouteBookingCancelled = "notify.booking.cancelled"
	RouteBookingReminder  = "notify.booking.reminder"
)
