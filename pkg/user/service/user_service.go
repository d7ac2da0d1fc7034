package service

import (
	"context"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*entities.User, error)
	// Login verifies the credentials and returns a signed bearer token plus
	// the user id.
	Login(ctx context.Context, username, password string) (token string, userID string, err error)
}
