package list_cars

import (
	"errors"
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
)

const msgInvalidParams = "invalid query parameters"

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars
// Query params: status, make, transmission, minSeats, licensePlate, search,
// dueBy или dueWithinDays, page, pageSize (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /cars - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("GET /cars - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /cars - Failed to list cars: error=%v", err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /cars - Cars retrieved successfully: count=%d, skipped=%d", len(result.Cars), result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
