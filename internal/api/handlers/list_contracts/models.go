package list_contracts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

// ToServiceRequest собирает запрос к сервису.
// На маршруте /users/{userId}/contracts пользователь берётся из пути.
func ToServiceRequest(r *http.Request) (*models.ListContractsRequest, error) {
	q := r.URL.Query()

	startsAfter, err := handlers.QueryDate(q, "startsAfter")
	if err != nil {
		return nil, err
	}
	endsBefore, err := handlers.QueryDate(q, "endsBefore")
	if err != nil {
		return nil, err
	}
	liveOnly, err := handlers.QueryBool(q, "liveOnly")
	if err != nil {
		return nil, err
	}
	page, size, err := handlers.QueryPage(r)
	if err != nil {
		return nil, err
	}

	req := &models.ListContractsRequest{
		Status:      handlers.QueryString(q, "status"),
		UserID:      handlers.QueryString(q, "userId"),
		CarID:       handlers.QueryString(q, "carId"),
		StartsAfter: startsAfter,
		EndsBefore:  endsBefore,
		Page:        page,
		PageSize:    size,
	}
	if liveOnly != nil {
		req.LiveOnly = *liveOnly
	}
	if userID, ok := mux.Vars(r)["userId"]; ok {
		req.UserID = &userID
	}
	return req, nil
}
