package create_contract

import (
	"errors"
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	createContract "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/create_contract"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid contract data"
	msgInvalidPeriod      = "invalid rental period"
	msgUserNotFound       = "user not found"
	msgUserInactive       = "user account is inactive"
	msgCarNotFound        = "car not found"
	msgCarNotAvailable    = "car is not available"
	msgCarAlreadyBooked   = "car is already booked for the selected dates"
	msgCorruptDocument    = "stored record cannot be read"
)

type Handler struct {
	useCase CreateContractUseCase
	logger  Logger
}

func NewHandler(useCase CreateContractUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/contracts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateContractRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contracts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /contracts - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createContract.ErrInvalidInput):
			h.logger.Warn("POST /contracts - Invalid input: user_id=%s, car_id=%s, error=%v", req.UserID, req.CarID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createContract.ErrInvalidPeriod):
			h.logger.Warn("POST /contracts - Invalid period: user_id=%s, car_id=%s, error=%v", req.UserID, req.CarID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createContract.ErrUserNotFound):
			h.logger.Warn("POST /contracts - User not found: user_id=%s", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createContract.ErrUserInactive):
			h.logger.Warn("POST /contracts - User inactive: user_id=%s", req.UserID)
			handlers.RespondError(w, http.StatusForbidden, msgUserInactive)

		case errors.Is(err, createContract.ErrCarNotFound):
			h.logger.Warn("POST /contracts - Car not found: car_id=%s", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createContract.ErrCarNotAvailable):
			h.logger.Warn("POST /contracts - Car not available: car_id=%s", req.CarID)
			handlers.RespondConflict(w, msgCarNotAvailable)

		case errors.Is(err, createContract.ErrCarAlreadyBooked):
			h.logger.Warn("POST /contracts - Car already booked: car_id=%s, %s - %s", req.CarID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgCarAlreadyBooked)

		case errors.Is(err, createContract.ErrCorruptDocument):
			h.logger.Error("POST /contracts - Corrupt document: user_id=%s, car_id=%s, error=%v", req.UserID, req.CarID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("POST /contracts - Failed to create contract: user_id=%s, car_id=%s, error=%v",
				req.UserID, req.CarID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /contracts - Contract created successfully: contract_id=%s, user_id=%s, car_id=%s",
		result.Contract.ID, req.UserID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
