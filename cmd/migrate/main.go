package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"huddle/config"
	"huddle/internal/repository"
	"huddle/internal/services"
	"huddle/pkg/database"
)

const usage = `
Huddle - Database CLI Tool

Usage:
  migrate [flags] [command]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Print the applied state of every migration
  reset       Roll back all migrations (DANGEROUS)
  seed        Create a member from -username/-password

Flags:
  -username string   Username for seeding (default "admin")
  -password string   Password for seeding (default "admin123")

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate -username alice -password secret1 seed
`

func main() {
	defaults := database.DefaultSeedConfig()
	username := flag.String("username", defaults.Username, "Username for seeding")
	password := flag.String("password", defaults.Password, "Password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	ctx := context.Background()

	cfg := config.LoadConfig()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command {
	case "up", "down", "status", "reset":
		if err := database.Migrate(ctx, db, command); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Migration command %q finished", command)
	case "seed":
		store := repository.NewPostgresStore(db)
		creds := services.NewCredentialStore(store.Members, cfg.BcryptCost)
		if _, err := database.Seed(ctx, creds, &database.SeedConfig{Username: *username, Password: *password}); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
