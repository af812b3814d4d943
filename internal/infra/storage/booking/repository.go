package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/psqlbuilder"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

const bookingColumns = "id, slot_id, user_id, customer_name, customer_phone, duration_hours, " +
	"total_amount, platform_fee, owner_payout, booking_source, status, " +
	"payment_mode, payment_status, paid_amount, due_amount, payment_paid_at, " +
	"razorpay_order_id, razorpay_payment_id, razorpay_signature, " +
	"created_at, cancelled_at, reminder_sent"

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается только внутри транзакции аллокатора (слот уже заблокирован).
// Нарушение частичного уникального индекса активного бронирования на слот
// транслируется в ErrSlotTaken, а не в фатальную ошибку
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"slot_id",
			"user_id",
			"customer_name",
			"customer_phone",
			"duration_hours",
			"total_amount",
			"platform_fee",
			"owner_payout",
			"booking_source",
			"status",
			"payment_mode",
			"payment_status",
			"paid_amount",
			"due_amount",
			"payment_paid_at",
			"razorpay_order_id",
			"razorpay_payment_id",
			"razorpay_signature",
		).
		Values(
			b.ID,
			b.SlotID,
			b.UserID,
			b.CustomerName,
			b.CustomerPhone,
			b.DurationHours,
			b.TotalAmount,
			b.PlatformFee,
			b.OwnerPayout,
			b.Source,
			b.Status,
			b.PaymentMode,
			b.PaymentStatus,
			b.PaidAmount,
			b.DueAmount,
			b.PaymentPaidAt,
			b.GatewayOrderID,
			b.GatewayPaymentID,
			b.GatewaySignature,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetActiveBySlotID получает активное бронирование слота.
// Возвращает ErrBookingNotFound, если активного бронирования нет
func (r *Repository) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"slot_id": slotID, "status": domain.StatusBooked}, "GetActiveBySlotID")
}

// GetByGatewayPaymentID получает бронирование по идентификатору платежа шлюза
func (r *Repository) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"razorpay_payment_id": paymentID}, "GetByGatewayPaymentID")
}

// GetByGatewayOrderID получает бронирование по идентификатору заказа шлюза
func (r *Repository) GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"razorpay_order_id": orderID}, "GetByGatewayOrderID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return b, nil
}

// CountActiveByUserGroundDate подсчитывает активные бронирования пользователя
// на площадке за дату. Используется для дневного лимита онлайн-бронирований.
// Внутри транзакции аллокатора считается под тем же уровнем изоляции
func (r *Repository) CountActiveByUserGroundDate(ctx context.Context, userID, groundID int64, date time.Time) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{
			"b.user_id":   userID,
			"b.status":    domain.StatusBooked,
			"s.ground_id": groundID,
			"s.slot_date": date,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserGroundDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserGroundDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveBySlotIDs возвращает активные бронирования по списку слотов
// (для страницы просмотра слотов площадки)
func (r *Repository) GetActiveBySlotIDs(ctx context.Context, slotIDs []int64) ([]*domain.Booking, error) {
	if len(slotIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotIDs, "status": domain.StatusBooked}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает бронирования пользователя, опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByGroundWithFilter получает бронирования площадки с фильтрацией
// по периоду и статусу. Используется владельцем и отчетами (read-only)
func (r *Repository) GetByGroundWithFilter(ctx context.Context, filter domain.GroundBookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id", "b.slot_id", "b.user_id", "b.customer_name", "b.customer_phone", "b.duration_hours",
		"b.total_amount", "b.platform_fee", "b.owner_payout", "b.booking_source", "b.status",
		"b.payment_mode", "b.payment_status", "b.paid_amount", "b.due_amount", "b.payment_paid_at",
		"b.razorpay_order_id", "b.razorpay_payment_id", "b.razorpay_signature",
		"b.created_at", "b.cancelled_at", "b.reminder_sent",
	).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"s.ground_id": filter.GroundID}).
		OrderBy("s.slot_date DESC, s.start_time DESC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.slot_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusBooked})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel переводит бронирование в терминальный статус CANCELLED
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusBooked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AdvancePaymentStatus продвигает статус оплаты бронирования.
// Отметка времени оплаты выставляется только если она еще не была выставлена -
// повторная доставка того же события не меняет состояние
func (r *Repository) AdvancePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("payment_paid_at", squirrel.Expr("COALESCE(payment_paid_at, ?)", paidAt)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AdvancePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AdvancePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AdvancePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkReminderSent отмечает, что напоминание по бронированию отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListDueReminders возвращает активные бронирования без отметки о
// напоминании, чьи слоты приходятся на даты [dateFrom, dateTo].
// Точное попадание в окно напоминания проверяет вызывающая сторона
func (r *Repository) ListDueReminders(ctx context.Context, dateFrom, dateTo time.Time) ([]*domain.BookingReminder, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id", "b.user_id", "g.owner_id", "g.name",
		"s.slot_date", "s.start_time", "s.end_time",
	).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Join("grounds g ON g.id = s.ground_id").
		Where(squirrel.Eq{"b.status": domain.StatusBooked, "b.reminder_sent": false}).
		Where(squirrel.GtOrEq{"s.slot_date": dateFrom}).
		Where(squirrel.LtOrEq{"s.slot_date": dateTo}).
		OrderBy("s.slot_date, s.start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reminders := make([]*domain.BookingReminder, 0)
	for rows.Next() {
		var rem domain.BookingReminder
		err := rows.Scan(
			&rem.BookingID,
			&rem.UserID,
			&rem.OwnerID,
			&rem.GroundName,
			&rem.Date,
			&rem.StartTime,
			&rem.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDueReminders - scan row: %v", ErrScanRow, err)
		}

		reminders = append(reminders, &rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - iterate rows: %v", ErrExecQuery, err)
	}

	return reminders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.DurationHours,
		&b.TotalAmount,
		&b.PlatformFee,
		&b.OwnerPayout,
		&b.Source,
		&b.Status,
		&b.PaymentMode,
		&b.PaymentStatus,
		&b.PaidAmount,
		&b.DueAmount,
		&b.PaymentPaidAt,
		&b.GatewayOrderID,
		&b.GatewayPaymentID,
		&b.GatewaySignature,
		&createdAt,
		&b.CancelledAt,
		&b.ReminderSent,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
