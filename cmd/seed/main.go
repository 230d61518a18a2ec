package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/repository"
)

type account struct {
	username string
	role     domain.UserRole
	first    string
	last     string
	location string
}

var accounts = []account{
	{"kevin", domain.RoleBusiness, "Kevin", "Krüger", "Berlin"},
	{"laura", domain.RoleBusiness, "Laura", "Meyer", "Hamburg"},
	{"jonas", domain.RoleBusiness, "Jonas", "Wolf", "München"},
	{"andrey", domain.RoleCustomer, "Andrey", "Petrov", "Köln"},
	{"sara", domain.RoleCustomer, "Sara", "Schmidt", "Leipzig"},
}

var offerTitles = []string{
	"Logo Design",
	"Website Landing Page",
	"Social Media Paket",
	"Flyer und Visitenkarten",
	"Produktfotografie",
}

const demoPassword = "demo1234"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	offers := repository.NewOfferRepository(db)
	orders := repository.NewOrderRepository(db)
	reviews := repository.NewReviewRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.BcryptCost)
	if err != nil {
		log.Fatal(err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	var businesses, customers []*domain.User
	for _, a := range accounts {
		u, err := users.GetByUsername(ctx, a.username)
		if err != nil {
			if !database.IsNotFound(err) {
				log.Fatal(err)
			}
			u = &domain.User{
				Username:     a.username,
				Email:        a.username + "@coderr.local",
				PasswordHash: string(hash),
				FirstName:    a.first,
				LastName:     a.last,
				IsActive:     true,
			}
			p := domain.DefaultProfile(u)
			p.Type = a.role
			p.Location = a.location
			if err := users.CreateAccount(ctx, u, p, &domain.AuthToken{Key: uuid.NewString()}); err != nil {
				log.Fatalf("create %s: %v", a.username, err)
			}
			log.Printf("User created: %s / %s (%s)", a.username, demoPassword, a.role)
		}
		if a.role == domain.RoleBusiness {
			businesses = append(businesses, u)
		} else {
			customers = append(customers, u)
		}
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")
	var details []domain.OfferDetail
	for i, title := range offerTitles {
		owner := businesses[i%len(businesses)]
		base := int64(50 + rand.Intn(150))
		o := &domain.Offer{
			UserID:      owner.ID,
			Title:       title,
			Description: fmt.Sprintf("%s von %s %s.", title, owner.FirstName, owner.LastName),
		}
		for j, ot := range domain.OfferTypes {
			o.Details = append(o.Details, domain.OfferDetail{
				Title:              fmt.Sprintf("%s %s", title, ot),
				Revisions:          j + 1,
				DeliveryTimeInDays: 3 + j*2,
				Price:              decimal.NewFromInt(base * int64(j+1)),
				Features:           []string{"Quelldateien", fmt.Sprintf("%d Entwürfe", j+1)},
				OfferType:          ot,
			})
		}
		if err := offers.CreateWithDetails(ctx, o); err != nil {
			log.Fatalf("create offer %q: %v", title, err)
		}
		details = append(details, o.Details...)
	}

	// ================== ORDERS ==================
	log.Println("Creating orders...")
	statuses := []domain.OrderStatus{domain.OrderInProgress, domain.OrderCompleted, domain.OrderCancelled}
	for i := 0; i < 8; i++ {
		d, err := offers.GetDetailByID(ctx, details[rand.Intn(len(details))].ID)
		if err != nil {
			log.Fatal(err)
		}
		customer := customers[rand.Intn(len(customers))]
		o := domain.SnapshotOrder(d, customer.ID, d.Offer.UserID)
		if err := orders.Create(ctx, o); err != nil {
			log.Fatal(err)
		}
		if s := statuses[rand.Intn(len(statuses))]; s != o.Status {
			if err := orders.UpdateStatus(ctx, o, s); err != nil {
				log.Fatal(err)
			}
		}
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")
	for _, c := range customers {
		for _, b := range businesses {
			exists, err := reviews.ExistsByReviewerAndBusiness(ctx, c.ID, b.ID)
			if err != nil {
				log.Fatal(err)
			}
			if exists {
				continue
			}
			rv := &domain.Review{
				BusinessUserID: b.ID,
				ReviewerID:     c.ID,
				Rating:         3 + rand.Intn(3),
				Description:    fmt.Sprintf("Zusammenarbeit mit %s war angenehm.", b.FirstName),
			}
			if err := reviews.Create(ctx, rv); err != nil {
				log.Fatal(err)
			}
		}
	}

	log.Println("Seed completed.")
}
