package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	MobileNumber string
	Address      string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
