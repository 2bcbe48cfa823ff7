package cancel_contract

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

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

type mockContractService struct {
	mock.Mock
}

func (m *mockContractService) Cancel(ctx context.Context, id string, req *models.CancelContractRequest) (*models.ContractResponse, error) {
	args := m.Called(ctx, id, req)
	if c := args.Get(0); c != nil {
		return c.(*models.ContractResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func patch(svc ContractService, contractID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/contracts/{contractId}/cancel", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/contracts/"+contractID+"/cancel", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockContractService{}
	svc.On("Cancel", mock.Anything, "k1", &models.CancelContractRequest{Reason: "customer request"}).
		Return(&models.ContractResponse{ID: "k1", Status: "cancelled"}, nil)

	rec := patch(svc, "k1", `{"reason":"customer request"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing reason", contracts.ErrInvalidInput, http.StatusBadRequest},
		{"not found", contracts.ErrContractNotFound, http.StatusNotFound},
		{"cannot cancel", contracts.ErrCannotCancel, http.StatusConflict},
		{"corrupt", fmt.Errorf("%w: status", contracts.ErrCorruptDocument), http.StatusUnprocessableEntity},
		{"internal", contracts.ErrInternal, http.StatusInternalServerError},
		{"unavailable", fmt.Errorf("%w: %w", contracts.ErrInternal, domain.ErrUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContractService{}
			svc.On("Cancel", mock.Anything, "k1", mock.Anything).Return(nil, tt.err)

			rec := patch(svc, "k1", `{"reason":"x"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_UnknownField(t *testing.T) {
	svc := &mockContractService{}

	rec := patch(svc, "k1", `{"reason":"x","refund":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
