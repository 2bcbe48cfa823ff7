package adjust_wallet

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
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) AdjustWallet(ctx context.Context, id string, req *models.WalletRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if user := args.Get(0); user != nil {
		return user.(*models.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func post(svc UserService, userID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/users/{userId}/wallet", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users/"+userID+"/wallet", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockUserService{}
	svc.On("AdjustWallet", mock.Anything, "u1", &models.WalletRequest{Operation: "credit", Amount: "50"}).
		Return(&models.UserResponse{
			ID: "u1", FirstName: "Sara", Status: "active",
			WalletBalance: types.Money{Amount: "300.00", Currency: "SAR"},
		}, nil)

	rec := post(svc, "u1", `{"operation":"credit","amount":"50"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"walletBalance":{"amount":"300.00","currency":"SAR"}`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid operation", fmt.Errorf("%w: %w", users.ErrInvalidInput, models.ErrInvalidOperation), http.StatusBadRequest},
		{"insufficient funds", users.ErrInsufficientFunds, http.StatusConflict},
		{"not found", users.ErrUserNotFound, http.StatusNotFound},
		{"corrupt", fmt.Errorf("%w: wallet", users.ErrCorruptDocument), http.StatusUnprocessableEntity},
		{"internal", fmt.Errorf("%w: store down", users.ErrInternal), http.StatusInternalServerError},
		{"unavailable", fmt.Errorf("%w: %w", users.ErrInternal, domain.ErrUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserService{}
			svc.On("AdjustWallet", mock.Anything, "u1", mock.Anything).Return(nil, tt.err)

			rec := post(svc, "u1", `{"operation":"debit","amount":"500"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	svc := &mockUserService{}

	rec := post(svc, "u1", `{"operation":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AdjustWallet", mock.Anything, mock.Anything, mock.Anything)
}
