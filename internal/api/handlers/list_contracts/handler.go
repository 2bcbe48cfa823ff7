package list_contracts

import (
	"errors"
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
)

const msgInvalidParams = "invalid query parameters"

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

// Handle GET /api/v1/contracts и GET /api/v1/users/{userId}/contracts
// Query params: status, userId, carId, startsAfter, endsBefore, liveOnly, page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /contracts - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrInvalidInput):
			h.logger.Warn("GET /contracts - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /contracts - Failed to list contracts: error=%v", err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /contracts - Contracts retrieved successfully: count=%d, skipped=%d",
		len(result.Contracts), result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
