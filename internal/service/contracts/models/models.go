package models

import (
	"errors"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid contract status")
)

// Request модели

// ListContractsRequest запрос на получение списка контрактов
type ListContractsRequest struct {
	Status      *string    `json:"status,omitempty"`
	UserID      *string    `json:"userId,omitempty"`
	CarID       *string    `json:"carId,omitempty"`
	StartsAfter *time.Time `json:"startsAfter,omitempty"`
	EndsBefore  *time.Time `json:"endsBefore,omitempty"`
	LiveOnly    bool       `json:"liveOnly,omitempty"`
	Page        int        `json:"page"`
	PageSize    int        `json:"pageSize"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListContractsRequest) ToDomainFilter() (domain.ContractFilter, error) {
	filter := domain.ContractFilter{
		UserID:      r.UserID,
		CarID:       r.CarID,
		StartsAfter: r.StartsAfter,
		EndsBefore:  r.EndsBefore,
		LiveOnly:    r.LiveOnly,
	}
	if r.Status != nil {
		status, err := ToDomainContractStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// CancelContractRequest запрос на отмену контракта
type CancelContractRequest struct {
	Reason string `json:"reason"`
}

// Response модели

// LocationResponse точка выдачи или возврата
type LocationResponse struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// ExtensionResponse продление контракта
type ExtensionResponse struct {
	ExtendedAt *time.Time  `json:"extendedAt,omitempty"`
	NewEndDate *time.Time  `json:"newEndDate,omitempty"`
	Cost       types.Money `json:"cost"`
	Type       string      `json:"type,omitempty"`
	Count      int         `json:"count,omitempty"`
}

// TransactionResponse оплата контракта или взноса
type TransactionResponse struct {
	ID              string      `json:"id,omitempty"`
	Type            string      `json:"type,omitempty"`
	Status          string      `json:"status,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	TotalAmount     types.Money `json:"totalAmount"`
	PaidWithPayment types.Money `json:"paidWithPayment"`
	PaidWithWallet  types.Money `json:"paidWithWallet"`
}

// InstallmentResponse взнос по графику платежей
type InstallmentResponse struct {
	ID          string               `json:"id,omitempty"`
	PaymentNr   int                  `json:"paymentNr"`
	DueDate     *time.Time           `json:"dueDate,omitempty"`
	Amount      types.Money          `json:"amount"`
	IsPaid      bool                 `json:"isPaid"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ContractResponse ответ с данными контракта
type ContractResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	CarID          string                `json:"carId"`
	OrderID        string                `json:"orderId"`
	ContractNumber string                `json:"contractNumber"`
	Status         string                `json:"status"`
	BookingType    string                `json:"bookingType,omitempty"`
	StartDate      time.Time             `json:"startDate"`
	EndDate        time.Time             `json:"endDate"`
	Days           int                   `json:"days"`
	TotalAmount    types.Money           `json:"totalAmount"`
	Pickup         LocationResponse      `json:"pickup"`
	Dropoff        LocationResponse      `json:"dropoff"`
	Extended       bool                  `json:"extended"`
	Extensions     []ExtensionResponse   `json:"extensions,omitempty"`
	Transaction    *TransactionResponse  `json:"transaction,omitempty"`
	Installments   []InstallmentResponse `json:"installments,omitempty"`
	Reconciled     bool                  `json:"reconciled"`
	CancelReason   string                `json:"cancellationReason,omitempty"`
}

// ContractListResponse ответ со списком контрактов
type ContractListResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	Skipped   int                `json:"skipped,omitempty"`
}

// Методы конвертации

// FromDomainContract конвертирует domain модель в DTO
func FromDomainContract(c *domain.Contract) *ContractResponse {
	if c == nil {
		return nil
	}

	resp := &ContractResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		CarID:          c.CarID,
		OrderID:        c.OrderID,
		ContractNumber: c.ContractNumber,
		Status:         string(c.Status),
		BookingType:    string(c.BookingType),
		StartDate:      c.Period.Start,
		EndDate:        c.Period.End,
		Days:           c.Period.Days(),
		TotalAmount:    money(c.TotalAmount),
		Pickup:         fromLocation(c.Locations.Pickup),
		Dropoff:        fromLocation(c.Locations.Dropoff),
		Extended:       c.Extended,
		Transaction:    fromTransaction(c.Transaction),
		Reconciled:     c.IsReconciled(),
		CancelReason:   c.CancellationReason(),
	}

	for _, ext := range c.Extensions {
		resp.Extensions = append(resp.Extensions, ExtensionResponse{
			ExtendedAt: optionalTime(ext.ExtendedAt),
			NewEndDate: optionalTime(ext.NewEndDate),
			Cost:       money(ext.Cost),
			Type:       string(ext.Type),
			Count:      ext.Count,
		})
	}
	for _, inst := range c.Installments {
		resp.Installments = append(resp.Installments, InstallmentResponse{
			ID:          inst.ID,
			PaymentNr:   inst.PaymentNr,
			DueDate:     optionalTime(inst.DueDate),
			Amount:      money(inst.Amount),
			IsPaid:      inst.IsPaid,
			Transaction: fromTransaction(inst.Transaction),
		})
	}
	return resp
}

// FromDomainContractList конвертирует список domain моделей в DTO
func FromDomainContractList(contracts []*domain.Contract, skipped int) *ContractListResponse {
	resp := &ContractListResponse{
		Contracts: make([]ContractResponse, 0, len(contracts)),
		Skipped:   skipped,
	}
	for _, c := range contracts {
		if cResp := FromDomainContract(c); cResp != nil {
			resp.Contracts = append(resp.Contracts, *cResp)
		}
	}
	return resp
}

// ToDomainContractStatus конвертирует строку в domain.ContractStatus с валидацией
func ToDomainContractStatus(status string) (domain.ContractStatus, error) {
	s := domain.ContractStatus(status)
	switch s {
	case domain.ContractStatusDraft, domain.ContractStatusActive,
		domain.ContractStatusCompleted, domain.ContractStatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}

func money(m domain.Money) types.Money {
	return types.NewMoney(m.Amount, m.Currency)
}

func fromLocation(l domain.Location) LocationResponse {
	return LocationResponse{Type: string(l.Type), Name: l.Name, ID: l.ID}
}

func fromTransaction(tx *domain.TransactionInfo) *TransactionResponse {
	if tx == nil {
		return nil
	}
	return &TransactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		Status:          tx.Status,
		PaymentMethod:   tx.PaymentMethod,
		TotalAmount:     money(tx.TotalAmount),
		PaidWithPayment: money(tx.PaidWithPayment),
		PaidWithWallet:  money(tx.PaidWithWallet),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
