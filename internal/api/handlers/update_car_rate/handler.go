package update_car_rate

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
	msgInvalidRate        = "dailyRate must be a positive amount"
	msgNotFound           = "car not found"
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

// Handle PATCH /api/v1/cars/{carId}/rate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	var req models.UpdateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cars/{id}/rate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.UpdateRate(r.Context(), carID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("PATCH /cars/{id}/rate - Invalid rate: car_id=%s, rate=%s", carID, req.DailyRate)
			handlers.RespondBadRequest(w, msgInvalidRate)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("PATCH /cars/{id}/rate - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrCorruptDocument):
			h.logger.Error("PATCH /cars/{id}/rate - Corrupt document: car_id=%s, error=%v", carID, err)
			handlers.RespondUnprocessable(w, msgCorruptDocument)

		default:
			h.logger.Error("PATCH /cars/{id}/rate - Failed to update rate: car_id=%s, error=%v", carID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PATCH /cars/{id}/rate - Rate updated successfully: car_id=%s, rate=%s", carID, car.DailyRate.Amount)
	handlers.RespondJSON(w, http.StatusOK, car)
}
