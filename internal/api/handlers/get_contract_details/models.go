package get_contract_details

import (
	carModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
	contractModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
	userModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
	getContractDetails "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_contract_details"
)

// ContractDetailsResponse HTTP response model
type ContractDetailsResponse struct {
	Contract      contractModels.ContractResponse `json:"contract"`
	User          *userModels.UserResponse        `json:"user"`
	Car           *carModels.CarResponse          `json:"car"`
	RemainingDays int                             `json:"remainingDays"`
	Overdue       bool                            `json:"overdue"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getContractDetails.Response) *ContractDetailsResponse {
	return &ContractDetailsResponse{
		Contract:      *contractModels.FromDomainContract(resp.Contract),
		User:          userModels.FromDomainUser(resp.User),
		Car:           carModels.FromDomainCar(resp.Car),
		RemainingDays: resp.RemainingDays,
		Overdue:       resp.Overdue,
	}
}
