package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
	"coderr/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateAccount(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.AuthToken) error {
	args := m.Called(ctx, u, p, t)
	if args.Error(0) == nil {
		u.ID = 7
		p.UserID = u.ID
		t.UserID = u.ID
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetOrCreateToken(ctx context.Context, userID int64, candidate *domain.AuthToken) (*domain.AuthToken, error) {
	args := m.Called(ctx, userID, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthToken), args.Error(1)
}

func (m *mockUserRepo) GetByTokenKey(ctx context.Context, key string) (*domain.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, tokenKey string) (string, error) {
	args := m.Called(userID, tokenKey)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(tokenStr string) (*jwt.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username:         "anna",
		Email:            "Anna@Example.com",
		Password:         "secret-pass",
		RepeatedPassword: "secret-pass",
		Type:             "business",
	}
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	users.On("ExistsByUsername", mock.Anything, "anna").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "Anna@Example.com").Return(false, nil)
	users.On("CreateAccount", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "anna" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")) == nil
		}),
		mock.MatchedBy(func(p *domain.Profile) bool { return p.Type == domain.RoleBusiness }),
		mock.MatchedBy(func(tk *domain.AuthToken) bool { return tk.Key != "" }),
	).Return(nil)
	jwtSvc.On("GenerateToken", int64(7), mock.AnythingOfType("string")).Return("signed-token", nil)

	svc := NewService(users, jwtSvc, bcrypt.MinCost)
	out, err := svc.Register(context.Background(), validRegister())

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, "anna", out.Username)
	assert.Equal(t, int64(7), out.UserID)
	users.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_CollectsFieldErrors(t *testing.T) {
	users := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	users.On("ExistsByUsername", mock.Anything, "anna").Return(true, nil)
	users.On("ExistsByEmail", mock.Anything, "Anna@Example.com").Return(true, nil)

	req := validRegister()
	req.RepeatedPassword = "other"

	svc := NewService(users, jwtSvc, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), req)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Passwords do not match."}, verr.Fields["repeated_password"])
	assert.Equal(t, []string{"Already exists."}, verr.Fields["username"])
	assert.Equal(t, []string{"Already exists."}, verr.Fields["email"])
	users.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Register_InvalidType(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, mock.Anything).Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	req := validRegister()
	req.Type = "admin"

	svc := NewService(users, new(mockJWTService), bcrypt.MinCost)
	_, err := svc.Register(context.Background(), req)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
}

func TestService_Login_ReusesToken(t *testing.T) {
	users := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	user := &domain.User{ID: 3, Username: "bob", Email: "bob@example.com", PasswordHash: string(hash), IsActive: true}
	stored := &domain.AuthToken{UserID: 3, Key: "existing-key"}

	users.On("GetByUsername", mock.Anything, "bob").Return(user, nil)
	users.On("GetOrCreateToken", mock.Anything, int64(3), mock.Anything).Return(stored, nil)
	jwtSvc.On("GenerateToken", int64(3), "existing-key").Return("signed", nil)

	svc := NewService(users, jwtSvc, bcrypt.MinCost)
	out, err := svc.Login(context.Background(), LoginRequest{Username: "bob", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, "bob@example.com", out.Email)
	jwtSvc.AssertExpectations(t)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)

	tests := []struct {
		name string
		user *domain.User
		err  error
		pass string
	}{
		{name: "unknown user", err: gorm.ErrRecordNotFound, pass: "pw"},
		{name: "wrong password", user: &domain.User{ID: 1, PasswordHash: string(hash), IsActive: true}, pass: "nope"},
		{name: "inactive user", user: &domain.User{ID: 1, PasswordHash: string(hash), IsActive: false}, pass: "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepo)
			if tt.user != nil {
				users.On("GetByUsername", mock.Anything, "bob").Return(tt.user, nil)
			} else {
				users.On("GetByUsername", mock.Anything, "bob").Return(nil, tt.err)
			}

			svc := NewService(users, new(mockJWTService), bcrypt.MinCost)
			_, err := svc.Login(context.Background(), LoginRequest{Username: "bob", Password: tt.pass})

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{"Invalid credentials."}, verr.Fields["detail"])
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	users := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	claims := &jwt.Claims{UserID: 5}
	claims.ID = "key-5"
	jwtSvc.On("ValidateToken", "good").Return(claims, nil)
	jwtSvc.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))
	users.On("GetByTokenKey", mock.Anything, "key-5").Return(&domain.User{
		ID:      5,
		IsStaff: true,
		Profile: &domain.Profile{Type: domain.RoleCustomer},
	}, nil)

	svc := NewService(users, jwtSvc, bcrypt.MinCost)

	p, err := svc.Authenticate(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.UserID)
	assert.Equal(t, domain.RoleCustomer, p.Role)
	assert.True(t, p.IsStaff)

	_, err = svc.Authenticate(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Authenticate_RevokedRow(t *testing.T) {
	users := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	claims := &jwt.Claims{UserID: 5}
	claims.ID = "gone"
	jwtSvc.On("ValidateToken", "tok").Return(claims, nil)
	users.On("GetByTokenKey", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, jwtSvc, bcrypt.MinCost)
	_, err := svc.Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
