package main

import (
	"context"
	"errors"
	"fmt"

	"foodforall/internal/db"
	"foodforall/internal/store"
	"foodforall/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedAdminEmail    = "admin@foodforall.com"
	seedAdminPassword = "admin123"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the bootstrap admin user",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		userRepo := store.NewUserRepository(pool)

		existing, err := userRepo.UserByEmail(ctx, seedAdminEmail)
		if err != nil && !errors.Is(err, types.ErrUserNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		if existing != nil {
			logrus.Info("Admin user already exists, nothing to do")
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &types.User{
			Email:        seedAdminEmail,
			PasswordHash: string(hash),
			Role:         types.RoleAdmin,
			FullName:     "Admin User",
			PhoneNumber:  "1234567890",
			Address:      "Admin Office",
		}

		if err := userRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logrus.Info("Admin user created")
		pp.Println(admin)

		return nil
	},
}
