package database

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"coderr/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		slog.Info("connecting to PostgreSQL")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		return db, errors.Wrap(err, "open postgres")
	}

	slog.Info("using SQLite", "dsn", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	return db, errors.Wrap(err, "open sqlite")
}

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Profile{},
		&domain.AuthToken{},
		&domain.Offer{},
		&domain.OfferDetail{},
		&domain.Order{},
		&domain.Review{},
	}
}

func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(Models()...), "auto migrate")
}
