package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/repository"
)

func main() {
	username := flag.String("username", os.Getenv("ADMIN_USERNAME"), "staff username")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "staff email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "staff password")
	flag.Parse()

	if strings.TrimSpace(*username) == "" || strings.TrimSpace(*email) == "" || *password == "" {
		log.Fatal("username, email and password are required (flags or ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD)")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Username:     strings.TrimSpace(*username),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      true,
	}
	// staff accounts get the same default profile as everyone created
	// outside registration
	err = repository.NewUserRepository(db).CreateAccount(context.Background(), u,
		domain.DefaultProfile(u), &domain.AuthToken{Key: uuid.NewString()})
	if err != nil {
		if database.IsUniqueViolation(err) {
			log.Fatalf("user %q or email %q already exists", u.Username, u.Email)
		}
		log.Fatalf("create staff user: %v", err)
	}

	log.Printf("staff user created: id=%d username=%s", u.ID, u.Username)
}
