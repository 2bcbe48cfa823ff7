package cancel_contract

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgReasonRequired     = "cancellation reason is required"
	msgNotFound           = "contract not found"
	msgCannotCancel       = "contract cannot be cancelled"
	msgCorruptDocument    = "contract record cannot be read"
)

type Handler struct {
	service ContractService
	logger  Logger
}

func NewHandler(service ContractService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/contracts/{contractId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	var req models.CancelContractRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /contracts/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contract, err := h.service.Cancel(r.Context(), contractID, &req)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrInvalidInput):
			h.logger.Warn("PATCH /contracts/{id}/cancel - Missing reason: contract_id=%s", contractID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, contracts.ErrContractNotFound):
			h.logger.Warn("PATCH /contracts/{id}/cancel - Contract not found: contract_id=%s", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrCannotCancel):
			h.logger.Warn("PATCH /contracts/{id}/cancel - Cannot cancel: contract_id=%s", contractID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, contracts.ErrCorruptDocument):
			h.logger.Error("PATCH /contracts/{id}/cancel - Corrupt document: contract_id=%s, error=%v", contractID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /contracts/{id}/cancel - Failed to cancel contract: contract_id=%s, error=%v",
				contractID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PATCH /contracts/{id}/cancel - Contract cancelled successfully: contract_id=%s", contractID)
	handlers.RespondJSON(w, http.StatusOK, contract)
}
