package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContractStatus represents the lifecycle state of a rental contract
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// BookingType is the billing unit a contract was sold in
type BookingType string

const (
	BookingDay   BookingType = "Day"
	BookingWeek  BookingType = "Week"
	BookingMonth BookingType = "Month"
)

// Booking details keys written on cancellation
const (
	DetailCancellationReason = "cancellation_reason"
	DetailCancelledAt        = "cancelled_at"
)

// Contract represents a rental agreement between a user and a car
type Contract struct {
	ID             string
	UserID         string
	CarID          string
	OrderID        string
	ContractNumber string
	Status         ContractStatus
	BookingType    BookingType // empty when the document does not say
	Period         DateRange
	TotalAmount    Money

	// BookingDetails is an opaque payload owned by the booking front end
	BookingDetails map[string]any
	Extended       bool
	Extensions     []Extension
	Transaction    *TransactionInfo
	Installments   []Installment // ordered by PaymentNr

	// Locations is derived from BookingDetails and never stored
	Locations LocationPair

	Source *SourceInfo
}

// Extension is one prolongation of a contract period
type Extension struct {
	ExtendedAt time.Time
	NewEndDate time.Time
	Cost       Money
	Type       BookingType
	Count      int
}

// NewContractParams is the input for a contract created by this system
type NewContractParams struct {
	ID             string
	UserID         string
	CarID          string
	Period         DateRange
	TotalAmount    Money
	BookingType    BookingType
	BookingDetails map[string]any
}

// NewContract builds a draft contract with generated order and contract numbers
func NewContract(p NewContractParams) (*Contract, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidContract)
	}
	if strings.TrimSpace(p.UserID) == "" || strings.TrimSpace(p.CarID) == "" {
		return nil, fmt.Errorf("%w: user and car are required", ErrInvalidContract)
	}
	if p.BookingType != "" {
		if err := p.BookingType.Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := NewDateRange(p.Period.Start, p.Period.End); err != nil {
		return nil, err
	}
	details := CloneMap(p.BookingDetails)
	if details == nil {
		details = map[string]any{}
	}
	return &Contract{
		ID:             p.ID,
		UserID:         p.UserID,
		CarID:          p.CarID,
		OrderID:        DefaultOrderID(p.ID),
		ContractNumber: DefaultContractNumber(p.ID),
		Status:         ContractStatusDraft,
		BookingType:    p.BookingType,
		Period:         p.Period,
		TotalAmount:    p.TotalAmount,
		BookingDetails: details,
		Locations:      LocationsFromBookingDetails(details),
	}, nil
}

// DefaultOrderID is the order id given to contracts stored without one
func DefaultOrderID(id string) string {
	return "ORDER_" + firstRunes(id, 8)
}

// DefaultContractNumber is the contract number given to contracts stored without one
func DefaultContractNumber(id string) string {
	return "CNT_" + firstRunes(id, 8)
}

// Validate checks a booking type value
func (t BookingType) Validate() error {
	switch t {
	case BookingDay, BookingWeek, BookingMonth:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBookingType, t)
	}
}

// Validate checks the invariants a contract must satisfy before it is written
func (c *Contract) Validate() error {
	if strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.CarID) == "" {
		return fmt.Errorf("%w: user and car are required", ErrInvalidContract)
	}
	switch c.Status {
	case ContractStatusDraft, ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidContract, c.Status)
	}
	if c.BookingType != "" {
		if err := c.BookingType.Validate(); err != nil {
			return err
		}
	}
	if _, err := NewDateRange(c.Period.Start, c.Period.End); err != nil {
		return err
	}
	if c.TotalAmount.Amount.IsNegative() {
		return fmt.Errorf("%w: negative total", ErrInvalidContract)
	}
	return nil
}

// IsLive returns true if the contract still reserves its car for its period
func (c *Contract) IsLive() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusActive
}

// IsActive returns true if the rental is running
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// CanBeCancelled returns true if the contract is neither completed nor cancelled
func (c *Contract) CanBeCancelled() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusActive
}

// Activate starts a draft contract
func (c *Contract) Activate() error {
	if c.Status != ContractStatusDraft {
		return fmt.Errorf("%w: cannot activate %s contract", ErrInvalidTransition, c.Status)
	}
	c.Status = ContractStatusActive
	return nil
}

// Extend moves the end of an active contract and adds the extension cost to the total
func (c *Contract) Extend(newEnd time.Time, cost Money, typ BookingType, count int, now time.Time) error {
	if c.Status != ContractStatusActive {
		return fmt.Errorf("%w: contract %s is %s", ErrContractNotActive, c.ID, c.Status)
	}
	if err := typ.Validate(); err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive", ErrInvalidExtension)
	}
	period, err := c.Period.ExtendTo(newEnd)
	if err != nil {
		return err
	}
	total, err := c.TotalAmount.Add(cost)
	if err != nil {
		return err
	}

	c.Period = period
	c.TotalAmount = total
	c.Extended = true
	c.Extensions = append(c.Extensions, Extension{
		ExtendedAt: now.UTC(),
		NewEndDate: period.End,
		Cost:       cost,
		Type:       typ,
		Count:      count,
	})
	return nil
}

// Cancel stops a contract that has not completed, recording the reason in booking details
func (c *Contract) Cancel(reason string, now time.Time) error {
	if !c.CanBeCancelled() {
		return fmt.Errorf("%w: contract %s is %s", ErrCannotCancel, c.ID, c.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancelReasonRequired
	}
	if c.BookingDetails == nil {
		c.BookingDetails = map[string]any{}
	}
	c.BookingDetails[DetailCancellationReason] = reason
	c.BookingDetails[DetailCancelledAt] = now.UTC().Format(time.RFC3339)
	c.Status = ContractStatusCancelled
	return nil
}

// Complete closes an active contract
func (c *Contract) Complete() error {
	if c.Status != ContractStatusActive {
		return fmt.Errorf("%w: cannot complete %s contract", ErrInvalidTransition, c.Status)
	}
	c.Status = ContractStatusCompleted
	return nil
}

// IsOverdue returns true if an active contract has passed its end date
func (c *Contract) IsOverdue(now time.Time) bool {
	return c.Status == ContractStatusActive && now.After(c.Period.End)
}

// RemainingDays returns whole days left in an active contract
func (c *Contract) RemainingDays(now time.Time) int {
	if c.Status != ContractStatusActive || now.After(c.Period.End) {
		return 0
	}
	return int(c.Period.End.Sub(now) / (24 * time.Hour))
}

// InstallmentsTotal sums installment amounts in the contract currency
func (c *Contract) InstallmentsTotal() (Money, error) {
	total := ZeroMoney(c.TotalAmount.Currency)
	for _, inst := range c.Installments {
		var err error
		total, err = total.Add(inst.Amount)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// IsReconciled returns true if there are no installments or they add up to the total
func (c *Contract) IsReconciled() bool {
	if len(c.Installments) == 0 {
		return true
	}
	sum, err := c.InstallmentsTotal()
	if err != nil {
		return false
	}
	return sum.Equal(c.TotalAmount)
}

// CancellationReason returns the reason stored on cancellation, if any
func (c *Contract) CancellationReason() string {
	reason, _ := c.BookingDetails[DetailCancellationReason].(string)
	return reason
}
