package domain

import (
	"fmt"
	"strings"
)

// UserStatus is derived from stored flags, the source only knows these two
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a customer account
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Nationality   string
	WalletBalance Money
	EmailVerified bool
	PhoneVerified bool
	Status        UserStatus

	Source *SourceInfo
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsVerified returns true if both email and phone are verified
func (u *User) IsVerified() bool {
	return u.EmailVerified && u.PhoneVerified
}

// IsActive returns true if the user may book cars
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) Activate() {
	u.Status = UserStatusActive
}

func (u *User) Deactivate() {
	u.Status = UserStatusInactive
}

// Credit adds money to the wallet
func (u *User) Credit(amount Money) error {
	balance, err := u.WalletBalance.Add(amount)
	if err != nil {
		return err
	}
	u.WalletBalance = balance
	return nil
}

// Debit takes money from the wallet, the balance never goes below zero
func (u *User) Debit(amount Money) error {
	if u.WalletBalance.Currency == amount.Currency && u.WalletBalance.Amount.LessThan(amount.Amount) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, u.WalletBalance, amount)
	}
	balance, err := u.WalletBalance.Sub(amount)
	if err != nil {
		return err
	}
	u.WalletBalance = balance
	return nil
}

// Validate checks the invariants a user must satisfy before it is written
func (u *User) Validate() error {
	switch u.Status {
	case UserStatusActive, UserStatusInactive:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidUser, u.Status)
	}
	if u.WalletBalance.Amount.IsNegative() {
		return fmt.Errorf("%w: negative wallet balance", ErrInvalidUser)
	}
	return nil
}
