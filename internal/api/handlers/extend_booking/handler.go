package extend_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	extendBooking "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/extend_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid extension data"
	msgNotFound           = "contract not found"
	msgNotActive          = "only active contracts can be extended"
	msgInvalidEndDate     = "new end date must be after the current end date"
	msgCarAlreadyBooked   = "car is booked by another contract in the extension period"
	msgCorruptDocument    = "stored record cannot be read"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/contracts/{contractId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /contracts/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(contractID)
	if err != nil {
		h.logger.Warn("PATCH /contracts/{id}/extend - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /contracts/{id}/extend - Invalid input: contract_id=%s, error=%v", contractID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, extendBooking.ErrContractNotFound):
			h.logger.Warn("PATCH /contracts/{id}/extend - Contract not found: contract_id=%s", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrContractNotActive):
			h.logger.Warn("PATCH /contracts/{id}/extend - Contract not active: contract_id=%s", contractID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, extendBooking.ErrInvalidEndDate):
			h.logger.Warn("PATCH /contracts/{id}/extend - Invalid end date: contract_id=%s, end=%s", contractID, req.NewEndDate)
			handlers.RespondBadRequest(w, msgInvalidEndDate)

		case errors.Is(err, extendBooking.ErrCarAlreadyBooked):
			h.logger.Warn("PATCH /contracts/{id}/extend - Car already booked: contract_id=%s", contractID)
			handlers.RespondConflict(w, msgCarAlreadyBooked)

		case errors.Is(err, extendBooking.ErrCorruptDocument):
			h.logger.Error("PATCH /contracts/{id}/extend - Corrupt document: contract_id=%s, error=%v", contractID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /contracts/{id}/extend - Failed to extend contract: contract_id=%s, error=%v",
				contractID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /contracts/{id}/extend - Contract extended successfully: contract_id=%s, end=%s",
		contractID, result.Contract.Period.End.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, response)
}
