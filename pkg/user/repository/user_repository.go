package repository

import (
	"context"
	"errors"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("username already exists")
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}
