package memory

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// CarRepository машины в памяти
type CarRepository struct {
	t *table[*domain.Car]
}

// NewCarRepository создает пустой репозиторий машин
func NewCarRepository() *CarRepository {
	return &CarRepository{t: newTable(
		(*domain.Car).Clone,
		func(c *domain.Car) string { return c.ID },
		func(c *domain.Car, id string) { c.ID = id },
		domain.ErrCarNotFound,
	)}
}

var _ domain.CarRepository = (*CarRepository)(nil)

func (r *CarRepository) Get(_ context.Context, id string) (*domain.Car, error) {
	return r.t.get(id)
}

func (r *CarRepository) List(_ context.Context, filter domain.CarFilter, page domain.Page) ([]*domain.Car, error) {
	return r.t.list(filter.Match, page), nil
}

func (r *CarRepository) Save(_ context.Context, car *domain.Car) (*domain.Car, error) {
	if err := car.Validate(); err != nil {
		return nil, err
	}
	return r.t.save(car), nil
}

func (r *CarRepository) Delete(_ context.Context, id string) error {
	return r.t.delete(id)
}

// UserRepository пользователи в памяти
type UserRepository struct {
	t *table[*domain.User]
}

// NewUserRepository создает пустой репозиторий пользователей
func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable(
		(*domain.User).Clone,
		func(u *domain.User) string { return u.ID },
		func(u *domain.User, id string) { u.ID = id },
		domain.ErrUserNotFound,
	)}
}

var _ domain.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Get(_ context.Context, id string) (*domain.User, error) {
	return r.t.get(id)
}

func (r *UserRepository) List(_ context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, error) {
	return r.t.list(filter.Match, page), nil
}

func (r *UserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return r.t.save(user), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	return r.t.delete(id)
}

// ContractRepository контракты в памяти
type ContractRepository struct {
	t *table[*domain.Contract]
}

// NewContractRepository создает пустой репозиторий контрактов
func NewContractRepository() *ContractRepository {
	return &ContractRepository{t: newTable(
		(*domain.Contract).Clone,
		func(c *domain.Contract) string { return c.ID },
		func(c *domain.Contract, id string) { c.ID = id },
		domain.ErrContractNotFound,
	)}
}

var _ domain.ContractRepository = (*ContractRepository)(nil)

func (r *ContractRepository) Get(_ context.Context, id string) (*domain.Contract, error) {
	return r.t.get(id)
}

func (r *ContractRepository) List(_ context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error) {
	return r.t.list(filter.Match, page), nil
}

func (r *ContractRepository) Save(_ context.Context, c *domain.Contract) (*domain.Contract, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return r.t.save(c), nil
}

func (r *ContractRepository) Delete(_ context.Context, id string) error {
	return r.t.delete(id)
}
