package get_car_by_plate

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

type CarService interface {
	GetByLicensePlate(ctx context.Context, plate string) (*models.CarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
