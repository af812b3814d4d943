package get_owner_grounds

import (
	"net/http"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
)

const msgOwnerOnly = "список своих площадок доступен только владельцам"

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

// Handle GET /api/v1/owner/grounds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не указан идентификатор пользователя")
		return
	}

	if middleware.UserRole(r.Context()) != middleware.RoleOwner {
		h.logger.Warn("GET /owner/grounds - Access denied for non-owner: user_id=%d", userID)
		handlers.RespondForbidden(w, msgOwnerOnly)
		return
	}

	result, err := h.service.GetOwnerGrounds(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /owner/grounds - Failed to list owner grounds: owner_id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
