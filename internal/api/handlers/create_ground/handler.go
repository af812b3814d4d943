package create_ground

import (
	"errors"
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	"github.com/footbook/FB-GroundBookingService/internal/service/grounds"
	"github.com/footbook/FB-GroundBookingService/internal/service/grounds/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOwnerOnly          = "регистрация площадок доступна только владельцам"
	msgInvalidGroundData  = "некорректные данные площадки"
)

type Handler struct {
	service GroundsService
	logger  Logger
}

func NewHandler(service GroundsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/grounds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	if middleware.UserRole(r.Context()) != middleware.RoleOwner {
		h.logger.Warn("POST /grounds - Access denied for non-owner: user_id=%d", userID)
		handlers.RespondForbidden(w, msgOwnerOnly)
		return
	}

	var req models.CreateGroundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /grounds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, grounds.ErrInvalidInput):
			h.logger.Warn("POST /grounds - Invalid ground data: owner_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidGroundData)

		default:
			h.logger.Error("POST /grounds - Failed to create ground: owner_id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /grounds - Ground created: ground_id=%d, owner_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
