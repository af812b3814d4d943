package activitylog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/psqlbuilder"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

// Repository репозиторий журнала действий.
// Журнал append-only: записи никогда не изменяются и не удаляются
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_log").
		Columns("user_id", "action", "booking_id", "slot_id", "meta").
		Values(entry.UserID, entry.Action, entry.BookingID, entry.SlotID, entry.Meta).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	entry.Timestamp = createdAt.Time
	return nil
}

// GetLatestBookingEvent возвращает последнее событие бронирования
// (BOOKED или MANUAL_BOOKING) для живой ленты уведомлений
func (r *Repository) GetLatestBookingEvent(ctx context.Context) (*domain.ActivityLog, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "action", "booking_id", "slot_id", "meta", "created_at").
		From("activity_log").
		Where(squirrel.Eq{"action": []domain.ActivityAction{domain.ActionBooked, domain.ActionManualBooking}}).
		Where("slot_id IS NOT NULL").
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestBookingEvent - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.ActivityLog
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Action,
		&entry.BookingID,
		&entry.SlotID,
		&entry.Meta,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestBookingEvent - scan entry: %v", ErrScanRow, err)
	}

	entry.Timestamp = createdAt.Time
	return &entry, nil
}

// GetByBookingID возвращает все события бронирования в хронологическом порядке
func (r *Repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*domain.ActivityLog, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "action", "booking_id", "slot_id", "meta", "created_at").
		From("activity_log").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ActivityLog, 0)
	for rows.Next() {
		var entry domain.ActivityLog
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.BookingID,
			&entry.SlotID,
			&entry.Meta,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		entry.Timestamp = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
