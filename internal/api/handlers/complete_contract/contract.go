package complete_contract

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

type ContractService interface {
	Complete(ctx context.Context, id string) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
