package get_car_by_plate

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
)

const (
	msgNotFound     = "car not found"
	msgInvalidPlate = "license plate is required"
)

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

// Handle GET /api/v1/cars/license/{plate}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]

	car, err := h.service.GetByLicensePlate(r.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("GET /cars/license/{plate} - Invalid plate: plate=%q", plate)
			handlers.RespondBadRequest(w, msgInvalidPlate)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("GET /cars/license/{plate} - Car not found: plate=%s", plate)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /cars/license/{plate} - Failed to get car: plate=%s, error=%v", plate, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /cars/license/{plate} - Car retrieved successfully: plate=%s, car_id=%s", plate, car.ID)
	handlers.RespondJSON(w, http.StatusOK, car)
}
