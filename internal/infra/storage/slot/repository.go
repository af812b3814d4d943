package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/psqlbuilder"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

const slotColumns = "id, ground_id, slot_date, start_time, end_time, is_booked"

// Repository репозиторий для работы со слотами
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// CreateIfAbsent идемпотентно создает слот.
// При конфликте по уникальному ключу (ground_id, slot_date, start_time)
// существующая строка не изменяется - это делает генерацию слотов безопасной
// при одновременных ленивых вызовах. Возвращает true, если строка была создана
func (r *Repository) CreateIfAbsent(ctx context.Context, s *domain.Slot) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("ground_id", "slot_date", "start_time", "end_time", "is_booked").
		Values(s.GroundID, s.Date, s.StartTime, s.EndTime, s.IsBooked).
		Suffix("ON CONFLICT (ground_id, slot_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): это точка
// взаимного исключения конкурентных бронирований одного слота
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByGroundAndDate возвращает слоты площадки на дату, по возрастанию времени начала
func (r *Repository) GetByGroundAndDate(ctx context.Context, groundID int64, date time.Time) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"ground_id": groundID, "slot_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// SetBooked обновляет кэширующий флаг is_booked
func (r *Repository) SetBooked(ctx context.Context, id int64, booked bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_booked", booked).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	err := row.Scan(
		&s.ID,
		&s.GroundID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
