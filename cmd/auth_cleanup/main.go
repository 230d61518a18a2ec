package main

import (
	"context"
	"log"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/repository"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	n, err := repository.NewUserRepository(db).DeleteTokensOfInactiveUsers(context.Background())
	if err != nil {
		log.Fatalf("cleanup auth_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: auth_tokens=%d", n)
}
