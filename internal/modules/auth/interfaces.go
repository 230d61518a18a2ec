package auth

import (
	"context"

	"coderr/internal/domain"
	"coderr/internal/pkg/jwt"
)

// UserRepositoryInterface is the part of the user store the auth service uses.
type UserRepositoryInterface interface {
	CreateAccount(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.AuthToken) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetOrCreateToken(ctx context.Context, userID int64, candidate *domain.AuthToken) (*domain.AuthToken, error)
	GetByTokenKey(ctx context.Context, key string) (*domain.User, error)
}

type jwtService interface {
	GenerateToken(userID int64, tokenKey string) (string, error)
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}
