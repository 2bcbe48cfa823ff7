package list_contracts

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

type ContractService interface {
	List(ctx context.Context, req *models.ListContractsRequest) (*models.ContractListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
