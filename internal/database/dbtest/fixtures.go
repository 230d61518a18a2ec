package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coderr/internal/domain"
)

// CreateUser inserts an active user with a profile of the given type and
// a token row.
func CreateUser(t *testing.T, db *gorm.DB, username string, role domain.UserRole) *domain.User {
	t.Helper()

	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    username + "-first",
		LastName:     username + "-last",
		IsActive:     true,
	}
	require.NoError(t, db.Omit("Profile").Create(u).Error)

	p := domain.DefaultProfile(u)
	p.Type = role
	require.NoError(t, db.Omit("User").Create(p).Error)
	require.NoError(t, db.Create(&domain.AuthToken{UserID: u.ID, Key: uuid.NewString()}).Error)

	u.Profile = p
	return u
}

// CreateOffer inserts an offer owned by userID with the three standard
// tiers priced basePrice, basePrice+50 and basePrice+100.
func CreateOffer(t *testing.T, db *gorm.DB, userID int64, title string, basePrice int64, baseDays int) *domain.Offer {
	t.Helper()

	o := &domain.Offer{UserID: userID, Title: title, Description: title + " description"}
	require.NoError(t, db.Omit("User", "Details").Create(o).Error)

	for i, ot := range domain.OfferTypes {
		d := domain.OfferDetail{
			OfferID:            o.ID,
			Title:              title + " " + string(ot),
			Revisions:          i + 1,
			DeliveryTimeInDays: baseDays + i,
			Price:              decimal.NewFromInt(basePrice + int64(i)*50),
			Features:           []string{"feature " + string(ot)},
			OfferType:          ot,
		}
		require.NoError(t, db.Omit("Offer").Create(&d).Error)
		o.Details = append(o.Details, d)
	}
	return o
}
