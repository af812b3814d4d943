package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrBusy возвращается, когда транзакция не смогла выполниться
// за отведенное число попыток из-за конкурентных блокировок
var ErrBusy = errors.New("txmanager: store is busy, retries exhausted")

const (
	// maxAttempts число попыток выполнить транзакцию при конфликтах
	maxAttempts = 3
	// retryBackoff фиксированная пауза между попытками
	retryBackoff = 100 * time.Millisecond
)

// Executor общий интерфейс для *sql.DB и *sql.Tx
// Репозитории работают только через него
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// TransactionManager управляет сериализуемыми транзакциями
// Открытая транзакция передается вниз по стеку через context
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE
// При конфликте сериализации или дедлоке вся транзакция повторяется
// (до maxAttempts попыток с фиксированной паузой). После исчерпания попыток
// возвращается ErrBusy. Любая другая ошибка fn откатывает транзакцию и
// возвращается как есть.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		lastErr = err
		if attempt < maxAttempts {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("%w: %v", ErrBusy, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// isRetryable проверяет, что ошибка является транзиентным конфликтом,
// при котором имеет смысл повторить транзакцию целиком:
// 40001 serialization_failure, 40P01 deadlock_detected, 55P03 lock_not_available
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case "40001", "40P01", "55P03":
		return true
	default:
		return false
	}
}

// GetExecutor возвращает активную транзакцию из контекста,
// либо fallback (обычно *sql.DB), если транзакции нет
func GetExecutor(ctx context.Context, fallback Executor) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
// Используется репозиториями для добавления FOR UPDATE только внутри транзакций
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}
