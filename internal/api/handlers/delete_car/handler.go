package delete_car

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
)

const msgNotFound = "car not found"

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

// Handle DELETE /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	if err := h.service.Delete(r.Context(), carID); err != nil {
		switch {
		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("DELETE /cars/{id} - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /cars/{id} - Failed to delete car: car_id=%s, error=%v", carID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("DELETE /cars/{id} - Car deleted successfully: car_id=%s", carID)
	handlers.RespondNoContent(w)
}
