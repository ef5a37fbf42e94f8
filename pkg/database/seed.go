package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"huddle/internal/domain/member"
	"huddle/internal/services"
	apperrors "huddle/pkg/errors"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Username string
	Password string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Username: "admin",
		Password: "admin123",
	}
}

// MemberCreator validates raw credentials and creates a member.
type MemberCreator interface {
	Enroll(ctx context.Context, in services.RegisterInput) (member.Member, error)
}

// Seed creates the configured member. An existing member with the same
// username is left untouched.
func Seed(ctx context.Context, creator MemberCreator, cfg *SeedConfig) (*member.Member, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	log.Println("Starting database seeding...")

	m, err := creator.Enroll(ctx, services.RegisterInput{Username: &cfg.Username, Password: &cfg.Password})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Printf("Member %q already exists, skipping", cfg.Username)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to seed member: %w", err)
	}

	log.Printf("Seeded member %s (%s)", m.Username, m.ID)
	return &m, nil
}
