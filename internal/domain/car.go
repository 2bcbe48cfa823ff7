package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CarStatus represents the rental status of a car
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusRented      CarStatus = "rented"
	CarStatusMaintenance CarStatus = "maintenance"
)

// Transmission represents the gearbox type
type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

// Car represents a rentable vehicle
type Car struct {
	ID           string
	Make         string
	Model        string
	Year         int // 0 = unknown
	LicensePlate string
	DailyRate    Money
	WeeklyRate   *Money // nil = no weekly offer
	MonthlyRate  *Money // nil = no monthly offer
	Status       CarStatus
	Seats        int // 0 = unknown
	Transmission Transmission
	Features     []string

	LastServiceDate *time.Time // nil = never serviced or unknown
	NextServiceDate *time.Time // nil = no service scheduled

	Source *SourceInfo
}

// NewCarParams is user input for a car that does not exist yet
type NewCarParams struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	DailyRate    Money
	WeeklyRate   *Money
	MonthlyRate  *Money
	Seats        int
	Transmission Transmission
	Features     []string
}

// NewCar builds an available car from user input and validates it
func NewCar(p NewCarParams) (*Car, error) {
	transmission := p.Transmission
	if transmission == "" {
		transmission = TransmissionAutomatic
	}
	car := &Car{
		Make:         strings.TrimSpace(p.Make),
		Model:        strings.TrimSpace(p.Model),
		Year:         p.Year,
		LicensePlate: strings.TrimSpace(p.LicensePlate),
		DailyRate:    p.DailyRate,
		WeeklyRate:   p.WeeklyRate,
		MonthlyRate:  p.MonthlyRate,
		Status:       CarStatusAvailable,
		Seats:        p.Seats,
		Transmission: transmission,
		Features:     NormalizeFeatures(p.Features),
	}
	if err := car.Validate(); err != nil {
		return nil, err
	}
	return car, nil
}

// Validate checks the invariants a car must satisfy before it is written
func (c *Car) Validate() error {
	if strings.TrimSpace(c.Make) == "" {
		return fmt.Errorf("%w: make is required", ErrInvalidCar)
	}
	if strings.TrimSpace(c.LicensePlate) == "" {
		return fmt.Errorf("%w: license plate is required", ErrInvalidCar)
	}
	if c.DailyRate.Amount.LessThan(MinDailyRate) {
		return fmt.Errorf("%w: daily rate must be at least %s", ErrInvalidCar, MinDailyRate.String())
	}
	if c.WeeklyRate != nil && c.WeeklyRate.Currency != c.DailyRate.Currency {
		return fmt.Errorf("%w: weekly rate currency differs from daily rate", ErrInvalidCar)
	}
	if c.MonthlyRate != nil && c.MonthlyRate.Currency != c.DailyRate.Currency {
		return fmt.Errorf("%w: monthly rate currency differs from daily rate", ErrInvalidCar)
	}
	if c.Seats != 0 && (c.Seats < MinSeats || c.Seats > MaxSeats) {
		return fmt.Errorf("%w: seats must be between %d and %d", ErrInvalidCar, MinSeats, MaxSeats)
	}
	if c.Year != 0 && c.Year < MinCarYear {
		return fmt.Errorf("%w: year must be at least %d", ErrInvalidCar, MinCarYear)
	}
	switch c.Status {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidCar, c.Status)
	}
	switch c.Transmission {
	case TransmissionAutomatic, TransmissionManual:
	default:
		return fmt.Errorf("%w: unknown transmission %q", ErrInvalidCar, c.Transmission)
	}
	return nil
}

// IsAvailable returns true if the car can be booked right now
func (c *Car) IsAvailable() bool {
	return c.Status == CarStatusAvailable
}

// MarkRented moves an available car to rented
func (c *Car) MarkRented() error {
	if c.Status != CarStatusAvailable {
		return fmt.Errorf("%w: car %s is %s", ErrCarNotAvailable, c.ID, c.Status)
	}
	c.Status = CarStatusRented
	return nil
}

// MarkAvailable returns the car to the fleet
func (c *Car) MarkAvailable() {
	c.Status = CarStatusAvailable
}

// SendToMaintenance takes the car out of service. A rented car has to be returned first.
func (c *Car) SendToMaintenance() error {
	if c.Status == CarStatusRented {
		return fmt.Errorf("%w: car %s is rented", ErrInvalidTransition, c.ID)
	}
	c.Status = CarStatusMaintenance
	return nil
}

// SetDailyRate changes the daily price, keeping the rate floor
func (c *Car) SetDailyRate(rate Money) error {
	if rate.Amount.LessThan(MinDailyRate) {
		return fmt.Errorf("%w: daily rate must be at least %s", ErrInvalidCar, MinDailyRate.String())
	}
	c.DailyRate = rate
	return nil
}

// HasFeature reports whether the car lists the feature
func (c *Car) HasFeature(feature string) bool {
	for _, f := range c.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// DueForService reports whether the next scheduled service falls on or before by.
// Cars already in maintenance are not due.
func (c *Car) DueForService(by time.Time) bool {
	if c.NextServiceDate == nil || c.Status == CarStatusMaintenance {
		return false
	}
	return !c.NextServiceDate.After(by)
}

// MatchesSearch reports whether term occurs, ignoring case, in the make, model,
// license plate or year of the car
func (c *Car) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, v := range []string{c.Make, c.Model, c.LicensePlate} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return c.Year != 0 && strings.Contains(strconv.Itoa(c.Year), term)
}

// DisplayName returns "Make Model (Year)"
func (c *Car) DisplayName() string {
	name := strings.TrimSpace(c.Make + " " + c.Model)
	if c.Year > 0 {
		name = fmt.Sprintf("%s (%d)", name, c.Year)
	}
	return name
}

// DeriveLicensePlate builds the placeholder plate used when none is stored:
// the first three letters of the make upper-cased, a dash, and the first four
// characters of the document id.
func DeriveLicensePlate(carMake, id string) string {
	return strings.ToUpper(firstRunes(strings.TrimSpace(carMake), 3)) + "-" + firstRunes(id, 4)
}

// NormalizeFeatures trims, de-duplicates and sorts feature names
func NormalizeFeatures(features []string) []string {
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
