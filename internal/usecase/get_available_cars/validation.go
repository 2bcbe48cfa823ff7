package get_available_cars

import (
	"fmt"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.BookingType != "" {
		if err := domain.BookingType(req.BookingType).Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.Transmission != nil {
		switch domain.Transmission(*req.Transmission) {
		case domain.TransmissionAutomatic, domain.TransmissionManual:
		default:
			return fmt.Errorf("%w: unknown transmission %q", ErrInvalidInput, *req.Transmission)
		}
	}

	if req.MinSeats != nil && *req.MinSeats < 0 {
		return fmt.Errorf("%w: minSeats must not be negative", ErrInvalidInput)
	}

	return nil
}

// validatePeriod проверяет период: конец после начала, начало не в прошлом и не дальше maxAdvanceDays
func validatePeriod(req *Request, now time.Time, maxAdvanceDays int) (domain.DateRange, error) {
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

	// 0 - без ограничений
	startDay := time.Date(period.Start.Year(), period.Start.Month(), period.Start.Day(), 0, 0, 0, 0, time.UTC)
	if maxAdvanceDays > 0 && startDay.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return domain.DateRange{}, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return period, nil
}

// toFilter собирает фильтр свободных машин
func toFilter(req *Request) domain.CarFilter {
	status := domain.CarStatusAvailable
	filter := domain.CarFilter{Status: &status, Make: req.Make, MinSeats: req.MinSeats}
	if req.Transmission != nil {
		t := domain.Transmission(*req.Transmission)
		filter.Transmission = &t
	}
	return filter
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

// busyCars возвращает ID машин, у которых есть действующий контракт на период
func busyCars(contracts []*domain.Contract, period domain.DateRange) map[string]bool {
	busy := make(map[string]bool)
	for _, c := range contracts {
		if c.IsLive() && c.Period.Overlaps(period) {
			busy[c.CarID] = true
		}
	}
	return busy
}
