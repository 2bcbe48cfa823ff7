package update_car_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "status must be one of available, rented, maintenance"
	msgNotFound           = "car not found"
	msgInvalidTransition  = "car cannot move to the requested status"
	msgCorruptDocument    = "car record cannot be read"
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

// Handle PATCH /api/v1/cars/{carId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cars/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.UpdateStatus(r.Context(), carID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("PATCH /cars/{id}/status - Invalid status: car_id=%s, status=%s", carID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("PATCH /cars/{id}/status - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrInvalidTransition):
			h.logger.Warn("PATCH /cars/{id}/status - Invalid transition: car_id=%s, status=%s", carID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, cars.ErrCorruptDocument):
			h.logger.Error("PATCH /cars/{id}/status - Corrupt document: car_id=%s, error=%v", carID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /cars/{id}/status - Failed to update status: car_id=%s, error=%v", carID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PATCH /cars/{id}/status - Status updated successfully: car_id=%s, status=%s", carID, car.Status)
	handlers.RespondJSON(w, http.StatusOK, car)
}
