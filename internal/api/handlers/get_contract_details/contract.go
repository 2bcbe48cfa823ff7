package get_contract_details

import (
	"context"

	getContractDetails "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_contract_details"
)

type GetContractDetailsUseCase interface {
	Execute(ctx context.Context, req *getContractDetails.Request) (*getContractDetails.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
