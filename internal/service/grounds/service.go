package grounds

import (
	"context"
	"errors"
	"fmt"

	groundRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

// Service регистрация и просмотр площадок
type Service struct {
	groundRepo   GroundRepository
	generator    SlotGenerator
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	groundRepo GroundRepository,
	generator SlotGenerator,
	horizonDays int,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		groundRepo:   groundRepo,
		generator:    generator,
		horizonDays:  horizonDays,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create регистрирует площадку и предзаполняет сетку слотов на
// скользящее окно вперёд
func (s *Service) Create(ctx context.Context, req *models.CreateGroundRequest) (*models.GroundResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	ground, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid time config: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.groundRepo.Create(ctx, ground)
	if err != nil {
		s.logger.Error("Create: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: registered ground id=%d for owner=%d", created.ID, created.OwnerID)

	createdSlots, err := s.generator.EnsureWindow(ctx, created.ID, s.timeProvider.Now(), s.horizonDays)
	if err != nil {
		// Площадка уже создана, сетка дозаполнится лениво при первом просмотре
		s.logger.Error("Create: failed to pre-populate slots for ground id=%d: %v", created.ID, err)
	} else {
		s.logger.Info("Create: pre-populated %d slots for ground id=%d", createdSlots, created.ID)
	}

	return models.FromDomainGround(created), nil
}

// List возвращает все активные площадки
func (s *Service) List(ctx context.Context) (*models.GroundListResponse, error) {
	grounds, err := s.groundRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGroundList(grounds), nil
}

// GetByID возвращает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.GroundResponse, error) {
	ground, err := s.groundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, groundRepo.ErrGroundNotFound) {
			s.logger.Warn("GetByID: ground id=%d not found", id)
			return nil, ErrGroundNotFound
		}
		s.logger.Error("GetByID: repository error for ground id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGround(ground), nil
}

// GetOwnerGrounds возвращает площадки владельца
func (s *Service) GetOwnerGrounds(ctx context.Context, ownerID int64) (*models.GroundListResponse, error) {
	grounds, err := s.groundRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("GetOwnerGrounds: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetOwnerGrounds - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGroundList(grounds), nil
}

func validateCreateRequest(req *models.CreateGroundRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.DayPrice < 0 || req.NightPrice < 0 {
		return fmt.Errorf("%w: prices must be non-negative", ErrInvalidInput)
	}

	if req.OpeningTime == "" || req.ClosingTime == "" {
		return fmt.Errorf("%w: openingTime and closingTime are required", ErrInvalidInput)
	}

	// Диапазоны генерации задаются только парами
	if (req.Slot1Start == nil) != (req.Slot1End == nil) {
		return fmt.Errorf("%w: slot1Start and slot1End must be set together", ErrInvalidInput)
	}

	if (req.Slot2Start == nil) != (req.Slot2End == nil) {
		return fmt.Errorf("%w: slot2Start and slot2End must be set together", ErrInvalidInput)
	}

	if req.Slot2Start != nil && req.Slot1Start == nil {
		return fmt.Errorf("%w: slot2 range requires slot1 range", ErrInvalidInput)
	}

	return nil
}
