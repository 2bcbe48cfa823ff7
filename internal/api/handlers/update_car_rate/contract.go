package update_car_rate

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

type CarService interface {
	UpdateRate(ctx context.Context, id string, req *models.UpdateRateRequest) (*models.CarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
