package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier публикует уведомления в AMQP topic exchange.
// Отправка fire-and-forget: ошибки логируются и никогда не влияют
// на результат операции, которая их породила
type Notifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// New подключается к AMQP брокеру и объявляет topic exchange
func New(url, exchange string, log Logger) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notifier: dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notifier: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notifier: declare exchange: %w", err)
	}

	return &Notifier{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Notify публикует уведомление с указанным routing key.
// Ошибка публикации проглатывается после логирования
func (n *Notifier) Notify(ctx context.Context, route, recipient, subject, body string) {
	msg := Notification{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		n.log.Error("Notify: marshal notification: %v", err)
		return
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, route, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	if err != nil {
		n.log.Error("Notify: publish route=%s recipient=%s: %v", route, recipient, err)
		return
	}

	n.log.Info("Notify: published route=%s recipient=%s", route, recipient)
}

// Close закрывает канал и соединение
func (n *Notifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// Noop заглушка, используется когда уведомления выключены
type Noop struct{}

// Notify ничего не делает
func (Noop) Notify(ctx context.Context, route, recipient, subject, body string) {}
