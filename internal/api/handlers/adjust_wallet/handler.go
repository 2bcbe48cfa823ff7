package adjust_wallet

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
	msgInvalidOperation   = "operation must be credit or debit with a positive amount"
	msgInsufficientFunds  = "insufficient wallet balance"
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

// Handle POST /api/v1/users/{userId}/wallet
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.WalletRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/wallet - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.AdjustWallet(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users/{id}/wallet - Invalid operation: user_id=%s, operation=%s, amount=%s",
				userID, req.Operation, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidOperation)

		case errors.Is(err, users.ErrInsufficientFunds):
			h.logger.Warn("POST /users/{id}/wallet - Insufficient funds: user_id=%s, amount=%s", userID, req.Amount)
			handlers.RespondConflict(w, msgInsufficientFunds)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("POST /users/{id}/wallet - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrCorruptDocument):
			h.logger.Error("POST /users/{id}/wallet - Corrupt document: user_id=%s, error=%v", userID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("POST /users/{id}/wallet - Failed to adjust wallet: user_id=%s, error=%v", userID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("POST /users/{id}/wallet - Wallet updated successfully: user_id=%s, balance=%s",
		userID, user.WalletBalance.Amount)
	handlers.RespondJSON(w, http.StatusOK, user)
}
