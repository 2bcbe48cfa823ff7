package update_car_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

type mockCarService struct {
	mock.Mock
}

func (m *mockCarService) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.CarResponse, error) {
	args := m.Called(ctx, id, req)
	if car := args.Get(0); car != nil {
		return car.(*models.CarResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func patch(svc CarService, carID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/cars/{carId}/status", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/cars/"+carID+"/status", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockCarService{}
	svc.On("UpdateStatus", mock.Anything, "nis00921", &models.UpdateStatusRequest{Status: "available"}).
		Return(&models.CarResponse{ID: "nis00921", Status: "available"}, nil)

	rec := patch(svc, "nis00921", `{"status":"available"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid status", fmt.Errorf("%w: %w", cars.ErrInvalidInput, models.ErrInvalidStatus), http.StatusBadRequest},
		{"not found", cars.ErrCarNotFound, http.StatusNotFound},
		{"rented car to maintenance", fmt.Errorf("%w: car is rented", cars.ErrInvalidTransition), http.StatusConflict},
		{"corrupt", cars.ErrCorruptDocument, http.StatusUnprocessableEntity},
		{"internal", cars.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCarService{}
			svc.On("UpdateStatus", mock.Anything, "c1", mock.Anything).Return(nil, tt.err)

			rec := patch(svc, "c1", `{"status":"maintenance"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
