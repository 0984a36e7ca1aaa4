// Command seed creates the initial platform admin account if none
// exists. The password must be supplied via SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"log"
	"time"

	"supportdesk/internal/config"
	"supportdesk/internal/model"
	"supportdesk/internal/repository"
	"supportdesk/internal/security"
	"supportdesk/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()
	if cfg.SeedAdmin.Password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	client, err := server.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(cfg.Mongo.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	users := repository.NewUserRepository(db)
	count, err := users.CountByRole(ctx, model.RolePlatAdmin)
	if err != nil {
		log.Fatalf("Failed to count admins: %v", err)
	}
	if count > 0 {
		log.Printf("Platform admin already exists, nothing to do")
		return
	}

	hasher := security.NewHasher(cfg.Auth.BcryptCost)
	hash, err := hasher.Hash(cfg.SeedAdmin.Password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin, err := users.Create(ctx, &model.User{
		Name:     cfg.SeedAdmin.Name,
		Email:    cfg.SeedAdmin.Email,
		Password: hash,
		Role:     model.RolePlatAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Platform admin created: %s (%s)", admin.Email, admin.ID.Hex())
}
