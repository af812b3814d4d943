package ground

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/footbook/FB-GroundBookingService/internal/domain"
	"github.com/footbook/FB-GroundBookingService/pkg/psqlbuilder"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

const groundColumns = "id, owner_id, name, location, image, day_price, night_price, " +
	"opening_time, closing_time, slot1_start, slot1_end, slot2_start, slot2_end, is_active, created_at"

// Repository репозиторий для работы с площадками
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку
func (r *Repository) Create(ctx context.Context, g *domain.Ground) (*domain.Ground, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("grounds").
		Columns(
			"owner_id",
			"name",
			"location",
			"image",
			"day_price",
			"night_price",
			"opening_time",
			"closing_time",
			"slot1_start",
			"slot1_end",
			"slot2_start",
			"slot2_end",
			"is_active",
		).
		Values(
			g.OwnerID,
			g.Name,
			g.Location,
			g.Image,
			g.DayPrice,
			g.NightPrice,
			g.OpeningTime,
			g.ClosingTime,
			g.Slot1Start,
			g.Slot1End,
			g.Slot2Start,
			g.Slot2End,
			g.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&g.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	g.CreatedAt = createdAt.Time
	return g, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Ground, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groundColumns).
		From("grounds").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	g, err := scanGround(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrGroundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan ground: %v", ErrScanRow, err)
	}

	return g, nil
}

// List возвращает все активные площадки
func (r *Repository) List(ctx context.Context) ([]*domain.Ground, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groundColumns).
		From("grounds").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanGrounds(rows)
}

// GetByOwnerID возвращает площадки владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Ground, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groundColumns).
		From("grounds").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanGrounds(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGround(row rowScanner) (*domain.Ground, error) {
	var g domain.Ground
	var createdAt sql.NullTime

	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Name,
		&g.Location,
		&g.Image,
		&g.DayPrice,
		&g.NightPrice,
		&g.OpeningTime,
		&g.ClosingTime,
		&g.Slot1Start,
		&g.Slot1End,
		&g.Slot2Start,
		&g.Slot2End,
		&g.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt = createdAt.Time
	return &g, nil
}

func scanGrounds(rows *sql.Rows) ([]*domain.Ground, error) {
	grounds := make([]*domain.Ground, 0)

	for rows.Next() {
		g, err := scanGround(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanGrounds - scan row: %v", ErrScanRow, err)
		}
		grounds = append(grounds, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanGrounds - rows error: %v", ErrScanRow, err)
	}

	return grounds, nil
}
