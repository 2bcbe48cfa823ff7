package get_available_cars

import (
	"context"

	getAvailableCars "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_available_cars"
)

type GetAvailableCarsUseCase interface {
	Execute(ctx context.Context, req *getAvailableCars.Request) (*getAvailableCars.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
