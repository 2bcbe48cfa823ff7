package domain

import "context"

// CarRepository stores cars. Get and Delete of an unknown id return an error
// matching ErrNotFound. List returns cars ordered by id.
type CarRepository interface {
	Get(ctx context.Context, id string) (*Car, error)
	List(ctx context.Context, filter CarFilter, page Page) ([]*Car, error)
	Save(ctx context.Context, car *Car) (*Car, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository stores users
type UserRepository interface {
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter UserFilter, page Page) ([]*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id string) error
}

// ContractRepository stores contracts
type ContractRepository interface {
	Get(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, filter ContractFilter, page Page) ([]*Contract, error)
	Save(ctx context.Context, contract *Contract) (*Contract, error)
	Delete(ctx context.Context, id string) error
}
