package models

import (
	"errors"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid user status")

	// ErrInvalidOperation возвращается при неизвестной операции с кошельком
	ErrInvalidOperation = errors.New("invalid wallet operation")
)

// Операции с кошельком
const (
	WalletCredit = "credit"
	WalletDebit  = "debit"
)

// Request модели

// ListUsersRequest запрос на получение списка пользователей
type ListUsersRequest struct {
	Status   *string `json:"status,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
	Email    *string `json:"email,omitempty"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListUsersRequest) ToDomainFilter() (domain.UserFilter, error) {
	filter := domain.UserFilter{Verified: r.Verified, Email: r.Email}
	if r.Status != nil {
		status, err := ToDomainUserStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// UpdateStatusRequest запрос на активацию или блокировку пользователя
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// WalletRequest запрос на пополнение или списание с кошелька
type WalletRequest struct {
	Operation string `json:"operation"` // credit | debit
	Amount    string `json:"amount"`
}

// Response модели

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	FullName      string      `json:"fullName"`
	Email         string      `json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Nationality   string      `json:"nationality,omitempty"`
	WalletBalance types.Money `json:"walletBalance"`
	EmailVerified bool        `json:"emailVerified"`
	PhoneVerified bool        `json:"phoneVerified"`
	Status        string      `json:"status"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users   []UserResponse `json:"users"`
	Skipped int            `json:"skipped,omitempty"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Email:         u.Email,
		Phone:         u.Phone,
		Nationality:   u.Nationality,
		WalletBalance: types.NewMoney(u.WalletBalance.Amount, u.WalletBalance.Currency),
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		Status:        string(u.Status),
	}
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User, skipped int) *UserListResponse {
	resp := &UserListResponse{
		Users:   make([]UserResponse, 0, len(users)),
		Skipped: skipped,
	}
	for _, user := range users {
		if userResp := FromDomainUser(user); userResp != nil {
			resp.Users = append(resp.Users, *userResp)
		}
	}
	return resp
}

// ToDomainUserStatus конвертирует строку в domain.UserStatus с валидацией
func ToDomainUserStatus(status string) (domain.UserStatus, error) {
	s := domain.UserStatus(status)
	switch s {
	case domain.UserStatusActive, domain.UserStatusInactive:
		return s, nil
	}
	return "", ErrInvalidStatus
}
