package update_user_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "status must be active or inactive"
	msgNotFound           = "user not found"
	msgCorruptDocument    = "user record cannot be read"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /users/{id}/status - Invalid status: user_id=%s, status=%s", userID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/status - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrCorruptDocument):
			h.logger.Error("PATCH /users/{id}/status - Corrupt document: user_id=%s, error=%v", userID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /users/{id}/status - Failed to update status: user_id=%s, error=%v", userID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/status - Status updated successfully: user_id=%s, status=%s", userID, user.Status)
	handlers.RespondJSON(w, http.StatusOK, user)
}
