package get_contract_details

import "github.com/d3coo/car-rental-fastapi-vite/internal/domain"

// Request модель запроса деталей контракта
type Request struct {
	ContractID string
}

// Response модель ответа с контрактом, арендатором и машиной
type Response struct {
	Contract      *domain.Contract
	User          *domain.User // nil, если пользователь удалён
	Car           *domain.Car  // nil, если машина удалена
	RemainingDays int          // Полных дней до конца аренды, 0 для неактивных
	Overdue       bool         // Активный контракт с прошедшей датой окончания
	Reconciled    bool         // Сумма взносов совпадает с итогом
}
