package razorpay

import (
	"context"
	"fmt"

	razorpaySDK "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client типизированная обертка над Razorpay SDK.
// Все суммы в минимальных единицах валюты
type Client struct {
	sdk           *razorpaySDK.Client
	keySecret     string
	webhookSecret string
	currency      string
	log           Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(keyID, keySecret, webhookSecret, currency string, log Logger) *Client {
	return &Client{
		sdk:           razorpaySDK.NewClient(keyID, keySecret),
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		currency:      currency,
		log:           log,
	}
}

// CreateOrder открывает заказ в шлюзе.
// notes - непрозрачные корреляционные метаданные (slot_id, user_id, payment_mode),
// по которым verify-фаза сверяет намерение без доверия клиентским значениям
func (c *Client) CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*Order, error) {
	_ = ctx // SDK управляет таймаутами самостоятельно

	notesData := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		notesData[k] = v
	}

	data := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": c.currency,
		"receipt":  receipt,
		"notes":    notesData,
	}

	body, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder: %v", ErrGateway, err)
	}

	order, err := parseOrder(body)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreateOrder: opened gateway order id=%s amount=%d %s", order.ID, order.Amount, order.Currency)
	return order, nil
}

// FetchOrder получает авторитетное состояние заказа из шлюза
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	_ = ctx

	body, err := c.sdk.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchOrder id=%s: %v", ErrGateway, orderID, err)
	}

	order, err := parseOrder(body)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchOrder id=%s: %v", ErrInvalidResponse, orderID, err)
	}

	return order, nil
}

// FetchPayment получает авторитетное состояние платежа из шлюза
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	_ = ctx

	body, err := c.sdk.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPayment id=%s: %v", ErrGateway, paymentID, err)
	}

	payment, err := parsePayment(body)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPayment id=%s: %v", ErrInvalidResponse, paymentID, err)
	}

	return payment, nil
}

// VerifyPaymentSignature криптографически проверяет подпись платежа.
// Любая ошибка проверки трактуется как невалидная подпись (fail closed)
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, c.keySecret)
}

// VerifyWebhookSignature проверяет подпись webhook события
// против общего секрета
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}
	return utils.VerifyWebhookSignature(string(payload), signature, c.webhookSecret)
}

func parseOrder(body map[string]interface{}) (*Order, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("missing order id")
	}

	amount, err := parseAmount(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("order %s: %v", id, err)
	}

	order := &Order{
		ID:       id,
		Amount:   amount,
		Currency: stringField(body, "currency"),
		Status:   stringField(body, "status"),
		Receipt:  stringField(body, "receipt"),
		Notes:    map[string]string{},
	}

	if notes, ok := body["notes"].(map[string]interface{}); ok {
		for k, v := range notes {
			if s, ok := v.(string); ok {
				order.Notes[k] = s
			}
		}
	}

	return order, nil
}

func parsePayment(body map[string]interface{}) (*Payment, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("missing payment id")
	}

	amount, err := parseAmount(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("payment %s: %v", id, err)
	}

	return &Payment{
		ID:      id,
		OrderID: stringField(body, "order_id"),
		Amount:  amount,
		Status:  stringField(body, "status"),
		Method:  stringField(body, "method"),
	}, nil
}

// parseAmount разбирает сумму из ответа шлюза.
// JSON числа приходят как float64, но в тестах удобнее передавать целые
func parseAmount(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected amount type %T", v)
	}
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return s
}
