package list_cars

import (
	"net/http"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) (*models.ListCarsRequest, error) {
	q := r.URL.Query()

	minSeats, err := handlers.QueryInt(q, "minSeats")
	if err != nil {
		return nil, err
	}
	dueBy, err := handlers.QueryDate(q, "dueBy")
	if err != nil {
		return nil, err
	}
	dueWithinDays, err := handlers.QueryInt(q, "dueWithinDays")
	if err != nil {
		return nil, err
	}
	page, size, err := handlers.QueryPage(r)
	if err != nil {
		return nil, err
	}

	return &models.ListCarsRequest{
		Status:       handlers.QueryString(q, "status"),
		Make:         handlers.QueryString(q, "make"),
		Transmission: handlers.QueryString(q, "transmission"),
		MinSeats:     minSeats,
		LicensePlate: handlers.QueryString(q, "licensePlate"),
		Search:       handlers.QueryString(q, "search"),

		DueBy:         dueBy,
		DueWithinDays: dueWithinDays,

		Page:     page,
		PageSize: size,
	}, nil
}
