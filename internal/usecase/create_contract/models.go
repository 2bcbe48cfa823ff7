package create_contract

import (
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// Request модель запроса на создание контракта
type Request struct {
	UserID         string         // ID документа пользователя
	CarID          string         // ID документа машины
	StartDate      time.Time      // Начало аренды
	EndDate        time.Time      // Конец аренды
	BookingType    string         // Day, Week или Month; пустое значение - посуточно по самой выгодной схеме
	BookingDetails map[string]any // Данные бронирования от фронтенда (точки выдачи и возврата)
}

// Response модель ответа с созданным контрактом
type Response struct {
	Contract *domain.Contract // Созданный активный контракт
	Car      *domain.Car      // Машина, переведённая в статус rented
	Quote    domain.Quote     // Расчёт стоимости
	Units    int              // Количество оплаченных единиц BookingType
}
