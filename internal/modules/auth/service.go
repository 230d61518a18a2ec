package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coderr/internal/access"
	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
)

// Service contains the registration and login logic.
type Service struct {
	users      UserRepositoryInterface
	jwt        jwtService
	bcryptCost int
}

func NewService(users UserRepositoryInterface, jwt jwtService, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, jwt: jwt, bcryptCost: bcryptCost}
}

// Register creates the user, its profile of the requested type and its
// token. Nothing is persisted when any field is rejected.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	verr := &apperr.ValidationError{}
	if req.Password != req.RepeatedPassword {
		verr.Add("repeated_password", "Passwords do not match.")
	}
	role := domain.UserRole(req.Type)
	if !role.Valid() {
		verr.Add("type", "\""+req.Type+"\" is not a valid choice.")
	}

	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		verr.Add("username", "Already exists.")
	}
	exists, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		verr.Add("email", "Already exists.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	profile := &domain.Profile{
		Type:  role,
		Email: strings.ToLower(req.Email),
	}
	token := &domain.AuthToken{Key: uuid.NewString()}

	if err := s.users.CreateAccount(ctx, user, profile, token); err != nil {
		// lost a race with a concurrent registration
		if database.IsUniqueViolation(err) {
			return nil, apperr.NewValidation(apperr.NonFieldErrors, "Username or email already exists.")
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "type", role)
	return s.issue(user, token)
}

// Login checks the credentials and returns the user's existing token,
// creating one on first login.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials()
	}

	token, err := s.users.GetOrCreateToken(ctx, user.ID, &domain.AuthToken{Key: uuid.NewString()})
	if err != nil {
		return nil, err
	}
	return s.issue(user, token)
}

// Authenticate resolves a bearer string into the calling principal.
func (s *Service) Authenticate(ctx context.Context, bearer string) (access.Principal, error) {
	claims, err := s.jwt.ValidateToken(bearer)
	if err != nil {
		return access.Principal{}, ErrInvalidToken
	}

	user, err := s.users.GetByTokenKey(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Principal{}, ErrInvalidToken
		}
		return access.Principal{}, err
	}
	if user.ID != claims.UserID {
		return access.Principal{}, ErrInvalidToken
	}

	p := access.Principal{UserID: user.ID, IsStaff: user.IsStaff}
	if user.Profile != nil {
		p.Role = user.Profile.Type
	}
	return p, nil
}

func (s *Service) issue(user *domain.User, token *domain.AuthToken) (*TokenResponse, error) {
	signed, err := s.jwt.GenerateToken(user.ID, token.Key)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		Token:    signed,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}
