package get_available_cars

import (
	"errors"
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	getAvailableCars "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_available_cars"
)

const (
	msgInvalidParams = "start and end are required, dates as YYYY-MM-DD"
	msgInvalidInput  = "invalid search parameters"
	msgInvalidPeriod = "invalid rental period"
	msgDateTooFar    = "start date is too far in the future"
)

type Handler struct {
	useCase GetAvailableCarsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableCarsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/available
// Query params: start, end (required), bookingType, make, transmission, minSeats (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cars/available - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableCars.ErrInvalidInput):
			h.logger.Warn("GET /cars/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableCars.ErrInvalidPeriod):
			h.logger.Warn("GET /cars/available - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getAvailableCars.ErrDateTooFarInFuture):
			h.logger.Warn("GET /cars/available - Date too far in future: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /cars/available - Failed to search cars: error=%v", err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	response := FromUseCaseResponse(result, useCaseReq.BookingType)

	h.logger.Info("GET /cars/available - Cars retrieved successfully: count=%d", len(result.Cars))
	handlers.RespondJSON(w, http.StatusOK, response)
}
