package extend_booking

import (
	"fmt"
	"strings"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ContractID) == "" {
		return fmt.Errorf("%w: contractID is required", ErrInvalidInput)
	}

	if req.NewEndDate.IsZero() {
		return fmt.Errorf("%w: newEndDate is required", ErrInvalidInput)
	}

	if req.BookingType != "" {
		if err := domain.BookingType(req.BookingType).Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// extensionType выбирает тип оплаты продления
func extensionType(req *Request, contract *domain.Contract) domain.BookingType {
	if req.BookingType != "" {
		return domain.BookingType(req.BookingType)
	}
	if contract.BookingType != "" {
		return contract.BookingType
	}
	return domain.BookingDay
}

// unitsFor возвращает число оплачиваемых единиц, неполная единица округляется вверх
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

// findConflict возвращает другой действующий контракт машины, пересекающийся с продлением
func findConflict(contracts []*domain.Contract, self string, extension domain.DateRange) *domain.Contract {
	for _, c := range contracts {
		if c.ID == self || !c.IsLive() {
			continue
		}
		if c.Period.Overlaps(extension) {
			return c
		}
	}
	return nil
}
