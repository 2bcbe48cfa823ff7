package complete_contract

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
)

const (
	msgNotFound          = "contract not found"
	msgInvalidTransition = "only active contracts can be completed"
	msgCorruptDocument   = "contract record cannot be read"
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

// Handle PATCH /api/v1/contracts/{contractId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	contract, err := h.service.Complete(r.Context(), contractID)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrContractNotFound):
			h.logger.Warn("PATCH /contracts/{id}/complete - Contract not found: contract_id=%s", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrInvalidTransition):
			h.logger.Warn("PATCH /contracts/{id}/complete - Invalid transition: contract_id=%s", contractID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, contracts.ErrCorruptDocument):
			h.logger.Error("PATCH /contracts/{id}/complete - Corrupt document: contract_id=%s, error=%v", contractID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /contracts/{id}/complete - Failed to complete contract: contract_id=%s, error=%v",
				contractID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PATCH /contracts/{id}/complete - Contract completed successfully: contract_id=%s", contractID)
	handlers.RespondJSON(w, http.StatusOK, contract)
}
