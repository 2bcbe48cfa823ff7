package cancel_contract

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

type ContractService interface {
	Cancel(ctx context.Context, id string, req *models.CancelContractRequest) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
