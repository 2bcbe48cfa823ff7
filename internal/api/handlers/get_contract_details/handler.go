package get_contract_details

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	getContractDetails "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_contract_details"
)

const (
	msgNotFound        = "contract not found"
	msgCorruptDocument = "stored record cannot be read"
)

type Handler struct {
	useCase GetContractDetailsUseCase
	logger  Logger
}

func NewHandler(useCase GetContractDetailsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/contracts/{contractId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	result, err := h.useCase.Execute(r.Context(), &getContractDetails.Request{ContractID: contractID})
	if err != nil {
		switch {
		case errors.Is(err, getContractDetails.ErrContractNotFound):
			h.logger.Warn("GET /contracts/{id} - Contract not found: contract_id=%s", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getContractDetails.ErrCorruptDocument):
			h.logger.Error("GET /contracts/{id} - Corrupt document: contract_id=%s, error=%v", contractID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("GET /contracts/{id} - Failed to get contract: contract_id=%s, error=%v", contractID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /contracts/{id} - Contract retrieved successfully: contract_id=%s", contractID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
