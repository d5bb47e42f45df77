package main

import (
	"fmt"

	"foodforall/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database schema migrations",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "down",
			Usage: "Number of migrations to roll back instead of migrating up",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := db.Migrate(cfg.DatabaseURL, c.Int("down")); err != nil {
			return err
		}

		logrus.Info("Migrations applied successfully")
		return nil
	},
}
