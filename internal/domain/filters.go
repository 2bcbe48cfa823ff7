package domain

import (
	"strings"
	"time"
)

// Page selects one page of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// Normalize applies defaults and caps the page size
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Bounds returns the [from, to) slice indexes of the page within total items
func (p Page) Bounds(total int) (int, int) {
	p = p.Normalize()
	from := (p.Number - 1) * p.Size
	if from > total {
		from = total
	}
	to := from + p.Size
	if to > total {
		to = total
	}
	return from, to
}

// CarFilter narrows a car listing, nil fields match everything
type CarFilter struct {
	Status       *CarStatus
	Make         *string // case-insensitive
	Transmission *Transmission
	MinSeats     *int
	LicensePlate *string    // case-insensitive exact match
	Search       *string    // case-insensitive substring of make, model, plate or year
	DueBy        *time.Time // next service on or before this time, maintenance cars excluded
}

// Match reports whether the car passes the filter
func (f CarFilter) Match(c *Car) bool {
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.Make != nil && !strings.EqualFold(c.Make, *f.Make) {
		return false
	}
	if f.Transmission != nil && c.Transmission != *f.Transmission {
		return false
	}
	if f.MinSeats != nil && c.Seats < *f.MinSeats {
		return false
	}
	if f.LicensePlate != nil && !strings.EqualFold(strings.TrimSpace(c.LicensePlate), strings.TrimSpace(*f.LicensePlate)) {
		return false
	}
	if f.Search != nil && !c.MatchesSearch(*f.Search) {
		return false
	}
	if f.DueBy != nil && !c.DueForService(*f.DueBy) {
		return false
	}
	return true
}

// UserFilter narrows a user listing
type UserFilter struct {
	Status   *UserStatus
	Verified *bool
	Email    *string // case-insensitive exact match
}

func (f UserFilter) Match(u *User) bool {
	if f.Status != nil && u.Status != *f.Status {
		return false
	}
	if f.Verified != nil && u.IsVerified() != *f.Verified {
		return false
	}
	if f.Email != nil && !strings.EqualFold(u.Email, *f.Email) {
		return false
	}
	return true
}

// ContractFilter narrows a contract listing
type ContractFilter struct {
	Status      *ContractStatus
	UserID      *string
	CarID       *string
	StartsAfter *time.Time
	EndsBefore  *time.Time
	LiveOnly    bool // only draft and active contracts
}

func (f ContractFilter) Match(c *Contract) bool {
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.UserID != nil && c.UserID != *f.UserID {
		return false
	}
	if f.CarID != nil && c.CarID != *f.CarID {
		return false
	}
	if f.StartsAfter != nil && c.Period.Start.Before(*f.StartsAfter) {
		return false
	}
	if f.EndsBefore != nil && c.Period.End.After(*f.EndsBefore) {
		return false
	}
	if f.LiveOnly && !c.IsLive() {
		return false
	}
	return true
}
