package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coderr/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: reviews.reviewer_id (2067)"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestMigrate_EnforcesReviewPairUniqueness(t *testing.T) {
	db, err := Connect("file:database_test_unique?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	first := &domain.Review{BusinessUserID: 1, ReviewerID: 2, Rating: 5, Description: "great"}
	require.NoError(t, db.Create(first).Error)

	dup := &domain.Review{BusinessUserID: 1, ReviewerID: 2, Rating: 1, Description: "again"}
	err = db.Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}
