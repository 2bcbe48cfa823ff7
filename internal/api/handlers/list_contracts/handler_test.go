package list_contracts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

type mockContractService struct {
	mock.Mock
}

func (m *mockContractService) List(ctx context.Context, req *models.ListContractsRequest) (*models.ContractListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ContractListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc ContractService, target string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/contracts", h.Handle)
	r.HandleFunc("/api/v1/users/{userId}/contracts", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockContractService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListContractsRequest) bool {
		return req.UserID != nil && *req.UserID == "u-7" && req.LiveOnly
	})).Return(&models.ContractListResponse{
		Contracts: []models.ContractResponse{{ID: "k1"}},
		Skipped:   2,
	}, nil)

	rec := serve(svc, "/api/v1/users/u-7/contracts?liveOnly=true")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipped":2`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	t.Run("bad query", func(t *testing.T) {
		svc := &mockContractService{}
		assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/contracts?startsAfter=yesterday").Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid status", fmt.Errorf("%w: %w", contracts.ErrInvalidInput, models.ErrInvalidStatus), http.StatusBadRequest},
		{"internal", contracts.ErrInternal, http.StatusInternalServerError},
		{"unavailable", fmt.Errorf("%w: %w", contracts.ErrInternal, domain.ErrUnavailable), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContractService{}
			svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(svc, "/api/v1/contracts?status=nope").Code)
		})
	}
}
