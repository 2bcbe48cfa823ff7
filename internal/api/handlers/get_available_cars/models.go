package get_available_cars

import (
	"errors"
	"net/url"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
	getAvailableCars "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_available_cars"
)

var errMissingPeriod = errors.New("start and end are required")

// AvailableCarsResponse HTTP response model
type AvailableCarsResponse struct {
	StartDate time.Time              `json:"startDate"`
	EndDate   time.Time              `json:"endDate"`
	Days      int                    `json:"days"`
	Cars      []AvailableCarResponse `json:"cars"`
	Skipped   int                    `json:"skipped,omitempty"`
}

// AvailableCarResponse машина с ценой за период
type AvailableCarResponse struct {
	Car   models.CarResponse     `json:"car"`
	Quote handlers.QuoteResponse `json:"quote"`
}

// ToUseCaseRequest разбирает query параметры: start, end (обязательные), bookingType, make, transmission, minSeats
func ToUseCaseRequest(q url.Values) (*getAvailableCars.Request, error) {
	start, err := handlers.QueryDate(q, "start")
	if err != nil {
		return nil, err
	}
	end, err := handlers.QueryDate(q, "end")
	if err != nil {
		return nil, err
	}
	if start == nil || end == nil {
		return nil, errMissingPeriod
	}
	minSeats, err := handlers.QueryInt(q, "minSeats")
	if err != nil {
		return nil, err
	}

	req := &getAvailableCars.Request{
		StartDate:    *start,
		EndDate:      *end,
		Make:         handlers.QueryString(q, "make"),
		Transmission: handlers.QueryString(q, "transmission"),
		MinSeats:     minSeats,
	}
	if typ := handlers.QueryString(q, "bookingType"); typ != nil {
		req.BookingType = *typ
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableCars.Response, bookingType string) *AvailableCarsResponse {
	if bookingType == "" {
		bookingType = string(domain.BookingDay)
	}
	out := &AvailableCarsResponse{
		StartDate: resp.Period.Start,
		EndDate:   resp.Period.End,
		Days:      resp.Period.Days(),
		Cars:      make([]AvailableCarResponse, 0, len(resp.Cars)),
		Skipped:   resp.Skipped,
	}
	for _, item := range resp.Cars {
		out.Cars = append(out.Cars, AvailableCarResponse{
			Car:   *models.FromDomainCar(item.Car),
			Quote: handlers.FromQuote(item.Quote, bookingType, item.Units),
		})
	}
	return out
}
