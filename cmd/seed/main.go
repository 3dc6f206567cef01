package main

import (
	"fmt"
	"os"

	"alxtravel/internal/database"
	"alxtravel/internal/metrics"
	"alxtravel/internal/modules/auth"
	"alxtravel/internal/pkg/logger"
	"alxtravel/internal/repository"
	"alxtravel/internal/seed"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seed",
		Usage: "Seed the database with sample listings, users, bookings, and reviews",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "listings",
				Value: seed.DefaultListings,
				Usage: "Number of listings to create",
			},
			&cli.IntFlag{
				Name:  "users",
				Value: seed.DefaultUsers,
				Usage: "Number of users to create",
			},
			&cli.StringFlag{
				Name:    "database-url",
				Value:   "travel.db",
				EnvVars: []string{"DATABASE_URL"},
				Usage:   "PostgreSQL DSN or SQLite file",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "YAML file replacing the built-in sample catalog",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Random seed for a reproducible run (default: time based)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	log := logger.New(logger.Config{
		Level:   c.String("log-level"),
		Format:  logger.TEXT,
		Output:  c.App.ErrWriter,
		Service: "seed",
	})

	catalog, err := seed.LoadCatalog(c.String("catalog"))
	if err != nil {
		return err
	}

	db, err := database.Connect(c.String("database-url"))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	metrics.Register()

	cfg := seed.Config{
		Users:        repository.NewUserRepository(db),
		Listings:     repository.NewListingRepository(db),
		Bookings:     repository.NewBookingRepository(db),
		Reviews:      repository.NewReviewRepository(db),
		Catalog:      catalog,
		HashPassword: auth.HashPassword,
		Out:          c.App.Writer,
		Logger:       log.Logger,
	}
	if c.IsSet("seed") {
		cfg.Rand = seed.NewRand(c.Int64("seed"))
	}

	_, err = seed.NewSeeder(cfg).Run(c.Context, seed.Options{
		Users:    c.Int("users"),
		Listings: c.Int("listings"),
	})
	return err
}
