package create_contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CarID) == "" {
		return fmt.Errorf("%w: carID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.BookingType != "" {
		if err := domain.BookingType(req.BookingType).Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validatePeriod проверяет период аренды: конец после начала, начало не в прошлом
func validatePeriod(req *Request, now time.Time) (domain.DateRange, error) {
	period, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	if !period.End.After(period.Start) {
		return domain.DateRange{}, fmt.Errorf("%w: rental must last at least one day", ErrInvalidPeriod)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UTC()
	if period.Start.Before(today) {
		return domain.DateRange{}, fmt.Errorf("%w: start %s is in the past", ErrInvalidPeriod, period.Start.Format(domain.DateFormat))
	}

	return period, nil
}

// unitsFor возвращает число оплачиваемых единиц типа бронирования, неполная единица округляется вверх
func unitsFor(typ domain.BookingType, days int) int {
	size := 1
	switch typ {
	case domain.BookingWeek:
		size = domain.DaysPerWeek
	case domain.BookingMonth:
		size = domain.DaysPerMonth
	}
	return (days + size - 1) / size
}

// findOverlap возвращает первый действующий контракт, пересекающийся с периодом
func findOverlap(contracts []*domain.Contract, period domain.DateRange) *domain.Contract {
	for _, c := range contracts {
		if c.IsLive() && c.Period.Overlaps(period) {
			return c
		}
	}
	return nil
}
