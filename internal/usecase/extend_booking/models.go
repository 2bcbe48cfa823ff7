package extend_booking

import (
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// Request модель запроса на продление аренды
type Request struct {
	ContractID  string    // ID контракта
	NewEndDate  time.Time // Новая дата окончания
	BookingType string    // Тип оплаты продления; пустое значение - тип контракта или посуточно
}

// Response модель ответа с продлённым контрактом
type Response struct {
	Contract    *domain.Contract // Контракт после продления
	PreviousEnd time.Time        // Дата окончания до продления
	Quote       domain.Quote     // Стоимость продления
	Units       int              // Количество оплаченных единиц
}
