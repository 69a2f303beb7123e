package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sjperalta/tuition-api/internal/config"
	"github.com/sjperalta/tuition-api/internal/database"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// add_user creates an administrator or bank user.
//
//	go run ./cmd/add_user -username teller01 -role bank
//
// The password is read from -password or the NEW_USER_PASSWORD variable.
func main() {
	username := flag.String("username", "", "username of the new user")
	password := flag.String("password", os.Getenv("NEW_USER_PASSWORD"), "password (min 8 characters)")
	role := flag.String("role", models.RoleBank, "role: admin or bank")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	authSvc := services.NewAuthService(repository.NewUserRepository(db), cfg)
	user, err := authSvc.CreateUser(ctx, *username, *password, *role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created %s user %q (id %d)\n", user.Role, user.Username, user.ID)
}
