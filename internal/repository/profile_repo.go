package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"coderr/internal/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ListByType(ctx context.Context, role domain.UserRole) ([]domain.Profile, error) {
	var out []domain.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("type = ?", role).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// UpdateWithUser writes profile columns and the given user columns under
// one commit. Either map may be empty.
func (r *ProfileRepository) UpdateWithUser(ctx context.Context, p *domain.Profile, profileFields, userFields map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(userFields) > 0 {
			res := tx.Model(&domain.User{}).Where("id = ?", p.UserID).Updates(userFields)
			if res.Error != nil {
				return errors.Wrap(res.Error, "update user")
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if len(profileFields) > 0 {
			if err := tx.Model(&domain.Profile{}).Where("id = ?", p.ID).Updates(profileFields).Error; err != nil {
				return errors.Wrap(err, "update profile")
			}
		}
		return tx.Preload("User").First(p, p.ID).Error
	})
}
