package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/oksasatya/fitness-auth-api/config"
	"github.com/oksasatya/fitness-auth-api/internal/bootstrap"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

// Seeds a verified demo account for the configured STORE_DRIVER. Re-running
// resets the demo password.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	if err := bootstrap.PrepareStore(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("prepare store")
	}
	repo, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("open store")
	}
	defer closeStore()

	index, err := bootstrap.NewUserIndex(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("search index")
	}

	email := "demo@fitness.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("hash password")
	}

	u := &entity.User{
		Email:              email,
		PasswordHash:       hash,
		UserName:           "demoUser",
		Age:                30,
		FitnessGoal:        "general fitness",
		FitnessLevel:       "beginner",
		SubscriptionStatus: "free",
		EmailVerified:      true,
	}
	err = repo.Create(ctx, u)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		existing, gerr := repo.GetByEmail(ctx, email)
		if gerr != nil {
			logger.WithError(gerr).Fatal("load existing demo user")
		}
		if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			logger.WithError(err).Fatal("reset demo password")
		}
		u = existing
	case err != nil:
		logger.WithError(err).Fatal("seed user")
	}

	if err := index.Index(ctx, u); err != nil {
		logger.WithError(err).Warn("index demo user")
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, email, u.UserName, password)
}
