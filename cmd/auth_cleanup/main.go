package main

import (
	"fmt"
	"os"
	"time"

	"alxtravel/internal/database"
	"alxtravel/internal/pkg/logger"
	"alxtravel/internal/repository"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "auth_cleanup",
		Usage: "Delete expired and long-revoked refresh tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Value:   "travel.db",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.DurationFlag{
				Name:  "revoked-retention",
				Value: 30 * 24 * time.Hour,
				Usage: "Keep revoked refresh tokens this long",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "auth cleanup failed:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logger.New(logger.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  logger.TEXT,
		Service: "auth-cleanup",
	})

	db, err := database.Connect(c.String("database-url"))
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer database.Close(db)

	now := time.Now().UTC()
	n, err := repository.NewRefreshTokenRepository(db).
		DeleteStale(c.Context, now, now.Add(-c.Duration("revoked-retention")))
	if err != nil {
		return fmt.Errorf("cleanup refresh_tokens: %w", err)
	}

	log.Info("auth cleanup completed", "refresh_tokens", n)
	return nil
}
