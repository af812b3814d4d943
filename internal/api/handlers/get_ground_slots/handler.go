package get_ground_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	"github.com/footbook/FB-GroundBookingService/internal/domain"
	getGroundSlots "github.com/footbook/FB-GroundBookingService/internal/usecase/get_ground_slots"
)

const (
	msgInvalidGroundID = "некорректный идентификатор площадки"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgGroundNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetGroundSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetGroundSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{id}/slots?date=YYYY-MM-DD
// Эндпоинт публичный: идентификатор пользователя берётся из заголовка
// шлюза, если тот его проставил
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groundID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || groundID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidGroundID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getGroundSlots.Request{
		GroundID: groundID,
		Date:     date,
		UserID:   optionalUserID(r),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getGroundSlots.ErrGroundNotFound):
			h.logger.Warn("GET /grounds/{id}/slots - Ground not found: ground_id=%d", groundID)
			handlers.RespondNotFound(w, msgGroundNotFound)

		default:
			h.logger.Error("GET /grounds/{id}/slots - Failed to get slots: ground_id=%d, date=%s: %v",
				groundID, date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func optionalUserID(r *http.Request) *int64 {
	raw := r.Header.Get(middleware.HeaderUserID)
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}

	return &id
}
