package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid car status")

	// ErrInvalidTransmission возвращается при некорректном типе коробки передач
	ErrInvalidTransmission = errors.New("invalid transmission")

	// ErrInvalidServiceWindow возвращается при некорректном окне обслуживания
	ErrInvalidServiceWindow = errors.New("invalid service window")
)

// Request модели

// ListCarsRequest запрос на получение списка машин
type ListCarsRequest struct {
	Status       *string `json:"status,omitempty"`
	Make         *string `json:"make,omitempty"`
	Transmission *string `json:"transmission,omitempty"`
	MinSeats     *int    `json:"minSeats,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	Search       *string `json:"search,omitempty"`

	// Машины, которым пора на обслуживание: до даты DueBy или в ближайшие DueWithinDays дней
	DueBy         *time.Time `json:"dueBy,omitempty"`
	DueWithinDays *int       `json:"dueWithinDays,omitempty"`

	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ToDomainFilter конвертирует request в domain фильтр, now нужен для DueWithinDays
func (r *ListCarsRequest) ToDomainFilter(now time.Time) (domain.CarFilter, error) {
	filter := domain.CarFilter{
		Make:         r.Make,
		MinSeats:     r.MinSeats,
		LicensePlate: r.LicensePlate,
		Search:       r.Search,
	}

	if r.Status != nil {
		status, err := ToDomainCarStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if r.Transmission != nil {
		transmission, err := ToDomainTransmission(*r.Transmission)
		if err != nil {
			return filter, err
		}
		filter.Transmission = &transmission
	}

	switch {
	case r.DueBy != nil && r.DueWithinDays != nil:
		return filter, fmt.Errorf("%w: dueBy and dueWithinDays are exclusive", ErrInvalidServiceWindow)
	case r.DueBy != nil:
		filter.DueBy = r.DueBy
	case r.DueWithinDays != nil:
		if *r.DueWithinDays < 0 {
			return filter, fmt.Errorf("%w: dueWithinDays must not be negative", ErrInvalidServiceWindow)
		}
		by := now.AddDate(0, 0, *r.DueWithinDays)
		filter.DueBy = &by
	}
	return filter, nil
}

// CreateCarRequest запрос на добавление машины в парк
type CreateCarRequest struct {
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year,omitempty"`
	LicensePlate string   `json:"licensePlate"`
	Currency     string   `json:"currency,omitempty"` // по умолчанию SAR
	DailyRate    string   `json:"dailyRate"`
	WeeklyRate   *string  `json:"weeklyRate,omitempty"`
	MonthlyRate  *string  `json:"monthlyRate,omitempty"`
	Seats        int      `json:"seats,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// ToDomainParams конвертирует request в параметры новой машины
func (r *CreateCarRequest) ToDomainParams() (domain.NewCarParams, error) {
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	daily, err := ParseMoney(r.DailyRate, currency)
	if err != nil {
		return domain.NewCarParams{}, fmt.Errorf("dailyRate: %w", err)
	}
	weekly, err := parseOptionalMoney(r.WeeklyRate, currency)
	if err != nil {
		return domain.NewCarParams{}, fmt.Errorf("weeklyRate: %w", err)
	}
	monthly, err := parseOptionalMoney(r.MonthlyRate, currency)
	if err != nil {
		return domain.NewCarParams{}, fmt.Errorf("monthlyRate: %w", err)
	}

	var transmission domain.Transmission
	if r.Transmission != "" {
		if transmission, err = ToDomainTransmission(r.Transmission); err != nil {
			return domain.NewCarParams{}, err
		}
	}

	return domain.NewCarParams{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		DailyRate:    daily,
		WeeklyRate:   weekly,
		MonthlyRate:  monthly,
		Seats:        r.Seats,
		Transmission: transmission,
		Features:     r.Features,
	}, nil
}

// UpdateStatusRequest запрос на смену статуса машины
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateRateRequest запрос на смену дневной цены
type UpdateRateRequest struct {
	DailyRate string `json:"dailyRate"`
}

// Response модели

// CarResponse ответ с данными машины
type CarResponse struct {
	ID           string       `json:"id"`
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Year         int          `json:"year,omitempty"`
	DisplayName  string       `json:"displayName"`
	LicensePlate string       `json:"licensePlate"`
	DailyRate    types.Money  `json:"dailyRate"`
	WeeklyRate   *types.Money `json:"weeklyRate,omitempty"`
	MonthlyRate  *types.Money `json:"monthlyRate,omitempty"`
	Status       string       `json:"status"`
	Seats        int          `json:"seats,omitempty"`
	Transmission string       `json:"transmission"`
	Features     []string     `json:"features"`

	LastServiceDate *time.Time `json:"lastServiceDate,omitempty"`
	NextServiceDate *time.Time `json:"nextServiceDate,omitempty"`
}

// CarListResponse ответ со списком машин.
// Skipped - число документов, которые не удалось прочитать.
type CarListResponse struct {
	Cars    []CarResponse `json:"cars"`
	Skipped int           `json:"skipped,omitempty"`
}

// Методы конвертации

// FromDomainCar конвертирует domain модель в DTO
func FromDomainCar(c *domain.Car) *CarResponse {
	if c == nil {
		return nil
	}

	features := c.Features
	if features == nil {
		features = []string{}
	}

	return &CarResponse{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		DisplayName:  c.DisplayName(),
		LicensePlate: c.LicensePlate,
		DailyRate:    types.NewMoney(c.DailyRate.Amount, c.DailyRate.Currency),
		WeeklyRate:   optionalMoney(c.WeeklyRate),
		MonthlyRate:  optionalMoney(c.MonthlyRate),
		Status:       string(c.Status),
		Seats:        c.Seats,
		Transmission: string(c.Transmission),
		Features:     features,

		LastServiceDate: c.LastServiceDate,
		NextServiceDate: c.NextServiceDate,
	}
}

// FromDomainCarList конвертирует список domain моделей в DTO
func FromDomainCarList(cars []*domain.Car, skipped int) *CarListResponse {
	resp := &CarListResponse{
		Cars:    make([]CarResponse, 0, len(cars)),
		Skipped: skipped,
	}
	for _, car := range cars {
		if carResp := FromDomainCar(car); carResp != nil {
			resp.Cars = append(resp.Cars, *carResp)
		}
	}
	return resp
}

// ToDomainCarStatus конвертирует строку в domain.CarStatus с валидацией
func ToDomainCarStatus(status string) (domain.CarStatus, error) {
	s := domain.CarStatus(status)
	switch s {
	case domain.CarStatusAvailable, domain.CarStatusRented, domain.CarStatusMaintenance:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// ToDomainTransmission конвертирует строку в domain.Transmission с валидацией
func ToDomainTransmission(transmission string) (domain.Transmission, error) {
	t := domain.Transmission(transmission)
	switch t {
	case domain.TransmissionAutomatic, domain.TransmissionManual:
		return t, nil
	}
	return "", ErrInvalidTransmission
}

// ParseMoney разбирает сумму из запроса в валюте currency
func ParseMoney(amount, currency string) (domain.Money, error) {
	d, err := types.ParseAmount(amount)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(d, currency)
}

func parseOptionalMoney(amount *string, currency string) (*domain.Money, error) {
	if amount == nil {
		return nil, nil
	}
	m, err := ParseMoney(*amount, currency)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func optionalMoney(m *domain.Money) *types.Money {
	if m == nil {
		return nil
	}
	v := types.NewMoney(m.Amount, m.Currency)
	return &v
}
