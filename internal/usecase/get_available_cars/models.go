package get_available_cars

import (
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// Request модель запроса свободных машин на период
type Request struct {
	StartDate    time.Time // Начало аренды
	EndDate      time.Time // Конец аренды
	BookingType  string    // Day, Week или Month; пустое значение - посуточно по самой выгодной схеме
	Make         *string   // Фильтр по марке, без учёта регистра
	Transmission *string   // automatic или manual
	MinSeats     *int      // Минимальное число мест
}

// Response модель ответа со свободными машинами
type Response struct {
	Period  domain.DateRange
	Cars    []AvailableCar // Упорядочены по цене, затем по ID
	Skipped int            // Документы, которые не удалось прочитать
}

// AvailableCar машина, свободная на весь период, с расчётом стоимости
type AvailableCar struct {
	Car   *domain.Car
	Quote domain.Quote
	Units int
}
