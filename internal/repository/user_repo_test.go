package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coderr/internal/database"
	"coderr/internal/database/dbtest"
	"coderr/internal/domain"
)

func newAccount(username string) (*domain.User, *domain.Profile, *domain.AuthToken) {
	u := &domain.User{
		Username:     username,
		Email:        "  " + username + "@Example.COM ",
		PasswordHash: "hash",
		IsActive:     true,
	}
	p := domain.DefaultProfile(u)
	p.Type = domain.RoleBusiness
	return u, p, &domain.AuthToken{Key: uuid.NewString()}
}

func TestUserRepository_CreateAccount(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := t.Context()

	u, p, tok := newAccount("maria")
	require.NoError(t, repo.CreateAccount(ctx, u, p, tok))
	assert.NotZero(t, u.ID)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, u.ID, tok.UserID)

	got, err := repo.GetByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", got.Email)
	require.NotNil(t, got.Profile)
	assert.Equal(t, domain.RoleBusiness, got.Profile.Type)

	exists, err := repo.ExistsByEmail(ctx, "MARIA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	// nothing from a failed account survives
	u2, p2, tok2 := newAccount("maria")
	err = repo.CreateAccount(ctx, u2, p2, tok2)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	var profiles int64
	require.NoError(t, db.Model(&domain.Profile{}).Count(&profiles).Error)
	assert.EqualValues(t, 1, profiles)
}

func TestUserRepository_Tokens(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := t.Context()

	u, p, tok := newAccount("kevin")
	require.NoError(t, repo.CreateAccount(ctx, u, p, tok))

	again, err := repo.GetOrCreateToken(ctx, u.ID, &domain.AuthToken{Key: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, tok.Key, again.Key)

	byKey, err := repo.GetByTokenKey(ctx, tok.Key)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byKey.ID)

	_, err = repo.GetByTokenKey(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)
	_, err = repo.GetByTokenKey(ctx, tok.Key)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	active, activeProfile, activeTok := newAccount("laura")
	require.NoError(t, repo.CreateAccount(ctx, active, activeProfile, activeTok))

	n, err := repo.DeleteTokensOfInactiveUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetByTokenKey(ctx, activeTok.Key)
	assert.NoError(t, err)

	// a later login issues a fresh key
	fresh, err := repo.GetOrCreateToken(ctx, u.ID, &domain.AuthToken{Key: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh.Key)
}
