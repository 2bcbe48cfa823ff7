package get_car

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
)

const (
	msgNotFound        = "car not found"
	msgCorruptDocument = "car record cannot be read"
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

// Handle GET /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	car, err := h.service.GetByID(r.Context(), carID)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("GET /cars/{id} - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrCorruptDocument):
			h.logger.Error("GET /cars/{id} - Corrupt document: car_id=%s, error=%v", carID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("GET /cars/{id} - Failed to get car: car_id=%s, error=%v", carID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /cars/{id} - Car retrieved successfully: car_id=%s", carID)
	handlers.RespondJSON(w, http.StatusOK, car)
}
