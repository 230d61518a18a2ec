package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"coderr/internal/database"
	"coderr/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount inserts the user, its profile and its token in one
// transaction. profile.UserID and token.UserID are filled in.
func (r *UserRepository) CreateAccount(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.AuthToken) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(u).Error; err != nil {
			return errors.Wrap(err, "create user")
		}
		p.UserID = u.ID
		if err := tx.Omit("User").Create(p).Error; err != nil {
			return errors.Wrap(err, "create profile")
		}
		t.UserID = u.ID
		if err := tx.Create(t).Error; err != nil {
			return errors.Wrap(err, "create token")
		}
		u.Profile = p
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// GetOrCreateToken returns the user's token row, creating it from
// candidate when none exists yet.
func (r *UserRepository) GetOrCreateToken(ctx context.Context, userID int64, candidate *domain.AuthToken) (*domain.AuthToken, error) {
	var t domain.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate.UserID = userID
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		// a concurrent login created it first
		if database.IsUniqueViolation(err) {
			if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
				return nil, err
			}
			return &t, nil
		}
		return nil, err
	}
	return candidate, nil
}

// GetByTokenKey resolves an active user from a stored token key.
func (r *UserRepository) GetByTokenKey(ctx context.Context, key string) (*domain.User, error) {
	var t domain.AuthToken
	if err := r.db.WithContext(ctx).Where("token_key = ?", key).First(&t).Error; err != nil {
		return nil, err
	}
	u, err := r.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DeleteTokensOfInactiveUsers removes the credentials of deactivated
// accounts and reports how many rows went.
func (r *UserRepository) DeleteTokensOfInactiveUsers(ctx context.Context) (int64, error) {
	inactive := r.db.Model(&domain.User{}).Select("id").Where("is_active = ?", false)
	res := r.db.WithContext(ctx).Where("user_id IN (?)", inactive).Delete(&domain.AuthToken{})
	return res.RowsAffected, res.Error
}
