package extend_booking

import (
	"fmt"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	contractModels "github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
	extendBooking "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/extend_booking"
)

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	NewEndDate  string `json:"newEndDate"`
	BookingType string `json:"bookingType,omitempty"`
}

// ExtendBookingResponse HTTP response model
type ExtendBookingResponse struct {
	Contract    contractModels.ContractResponse `json:"contract"`
	PreviousEnd time.Time                       `json:"previousEndDate"`
	Quote       handlers.QuoteResponse          `json:"quote"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExtendBookingRequest) ToUseCaseRequest(contractID string) (*extendBooking.Request, error) {
	end, err := handlers.ParseDate(r.NewEndDate)
	if err != nil {
		return nil, fmt.Errorf("newEndDate: %w", err)
	}
	return &extendBooking.Request{
		ContractID:  contractID,
		NewEndDate:  end,
		BookingType: r.BookingType,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendBooking.Response) *ExtendBookingResponse {
	out := &ExtendBookingResponse{
		Contract:    *contractModels.FromDomainContract(resp.Contract),
		PreviousEnd: resp.PreviousEnd,
	}
	typ := ""
	if n := len(resp.Contract.Extensions); n > 0 {
		typ = string(resp.Contract.Extensions[n-1].Type)
	}
	out.Quote = handlers.FromQuote(resp.Quote, typ, resp.Units)
	return out
}
