// seed creates the schema if needed, then inserts a local admin, a few demo
// subscribers, and a facebook-linked demo account into the dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@promo.local"
	adminPassword = "local-admin-password"

	demoFacebookID = "fb-demo-1001"
)

var subscriberEmails = []string{
	"deal-hunter@test.local",
	"early-bird@test.local",
	"gift-guide@test.local",
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	accounts := postgres.NewAccountRepository(pool)
	subscriptions := postgres.NewSubscriptionRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	admin, err := users.Create(ctx, "Site Admin", adminEmail, string(hash), domain.RoleAdmin)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("admin created: %s (%s)\n", admin.Email, admin.ID)

	// One subscriber with a linked facebook account, for exercising the
	// data-deletion callback locally.
	linked, err := users.Create(ctx, "Facebook Demo", "fb-demo@test.local", "", domain.RoleSubscriber)
	if err != nil {
		log.Fatalf("create linked user: %v", err)
	}
	if _, err := accounts.Create(ctx, linked.ID, "facebook", demoFacebookID); err != nil {
		log.Fatalf("link facebook account: %v", err)
	}
	fmt.Printf("facebook-linked user created: %s -> %s\n", demoFacebookID, linked.ID)

	for _, email := range subscriberEmails {
		if _, err := subscriptions.Create(ctx, email); err != nil {
			log.Fatalf("create subscription %s: %v", email, err)
		}
	}
	fmt.Printf("%d subscriptions created\n", len(subscriberEmails))
}
