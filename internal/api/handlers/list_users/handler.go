package list_users

import (
	"errors"
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
)

const msgInvalidParams = "invalid query parameters"

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

// Handle GET /api/v1/users
// Query params: status, verified, email, page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	verified, err := handlers.QueryBool(q, "verified")
	if err != nil {
		h.logger.Warn("GET /users - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	page, size, err := handlers.QueryPage(r)
	if err != nil {
		h.logger.Warn("GET /users - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListUsersRequest{
		Status:   handlers.QueryString(q, "status"),
		Verified: verified,
		Email:    handlers.QueryString(q, "email"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("GET /users - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users - Failed to list users: error=%v", err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /users - Users retrieved successfully: count=%d, skipped=%d", len(result.Users), result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
