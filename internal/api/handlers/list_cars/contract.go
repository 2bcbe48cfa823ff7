package list_cars

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

type CarService interface {
	List(ctx context.Context, req *models.ListCarsRequest) (*models.CarListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
