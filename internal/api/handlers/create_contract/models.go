package create_contract

import (
	"fmt"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	carModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
	contractModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
	createContract "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/create_contract"
)

// CreateContractRequest HTTP request model
type CreateContractRequest struct {
	UserID         string         `json:"userId"`
	CarID          string         `json:"carId"`
	StartDate      string         `json:"startDate"` // "2025-03-02" или RFC3339
	EndDate        string         `json:"endDate"`
	BookingType    string         `json:"bookingType,omitempty"`
	BookingDetails map[string]any `json:"bookingDetails,omitempty"`
}

// CreateContractResponse HTTP response model
type CreateContractResponse struct {
	Contract contractModels.ContractResponse `json:"contract"`
	Car      carModels.CarResponse           `json:"car"`
	Quote    handlers.QuoteResponse          `json:"quote"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateContractRequest) ToUseCaseRequest() (*createContract.Request, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &createContract.Request{
		UserID:         r.UserID,
		CarID:          r.CarID,
		StartDate:      start,
		EndDate:        end,
		BookingType:    r.BookingType,
		BookingDetails: r.BookingDetails,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createContract.Response) *CreateContractResponse {
	typ := resp.Contract.BookingType
	if typ == "" {
		typ = domain.BookingDay
	}
	return &CreateContractResponse{
		Contract: *contractModels.FromDomainContract(resp.Contract),
		Car:      *carModels.FromDomainCar(resp.Car),
		Quote:    handlers.FromQuote(resp.Quote, string(typ), resp.Units),
	}
}
