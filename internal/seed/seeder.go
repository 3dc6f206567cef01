package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"alxtravel/internal/domain"
	"alxtravel/internal/metrics"
	"alxtravel/internal/pkg/validator"

	"gorm.io/gorm"
)

const (
	DefaultUsers    = 5
	DefaultListings = 10
	DefaultPassword = "password123"

	maxBookings       = 15
	reviewedListings  = 8
	minReviewsPerItem = 1
	maxReviewsPerItem = 3
	minRating         = 3
	maxRating         = 5
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetOrCreate(ctx context.Context, username string, defaults *domain.User) (*domain.User, bool, error)
}

type ListingStore interface {
	GetOrCreate(ctx context.Context, title string, ownerID int64, defaults *domain.Listing) (*domain.Listing, bool, error)
}

type BookingStore interface {
	GetOrCreate(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error)
}

type ReviewStore interface {
	GetOrCreate(ctx context.Context, rv *domain.Review) (*domain.Review, bool, error)
}

type Options struct {
	Users    int `json:"users" validate:"gte=0"`
	Listings int `json:"listings" validate:"gte=0"`
}

type Result struct {
	Users    int
	Listings int
	Bookings int
	Reviews  int
}

type Config struct {
	Users    UserStore
	Listings ListingStore
	Bookings BookingStore
	Reviews  ReviewStore
	Catalog  *Catalog

	// Rand drives every random choice; nil means a time-seeded source.
	Rand *rand.Rand

	// HashPassword hashes the password of newly created users.
	HashPassword func(string) (string, error)

	// Out receives the progress lines; nil discards them.
	Out io.Writer

	Logger *slog.Logger
	Now    func() time.Time
}

type Seeder struct {
	users    UserStore
	listings ListingStore
	bookings BookingStore
	reviews  ReviewStore
	catalog  *Catalog
	rng      *rand.Rand
	hash     func(string) (string, error)
	out      io.Writer
	log      *slog.Logger
	now      func() time.Time
}

func NewSeeder(cfg Config) *Seeder {
	s := &Seeder{
		users:    cfg.Users,
		listings: cfg.Listings,
		bookings: cfg.Bookings,
		reviews:  cfg.Reviews,
		catalog:  cfg.Catalog,
		rng:      cfg.Rand,
		hash:     cfg.HashPassword,
		out:      cfg.Out,
		log:      cfg.Logger,
		now:      cfg.Now,
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// NewRand returns a deterministic source for a --seed value.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Run creates users, listings, bookings and reviews using get-or-create lookups, so a
// repeated run only adds what is missing.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validator.Struct(opts); err != nil {
		return nil, err
	}
	if s.catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}

	s.printf("Starting database seeding...")

	users, err := s.createUsers(ctx, opts.Users)
	if err != nil {
		return nil, err
	}
	s.printf("Created %d users", len(users))

	listings, err := s.createListings(ctx, opts.Listings, users)
	if err != nil {
		return nil, err
	}
	s.printf("Created %d listings", len(listings))

	bookings := s.createBookings(ctx, listings, users)
	s.printf("Created %d bookings", bookings)

	reviews := s.createReviews(ctx, listings, users)
	s.printf("Created %d reviews", reviews)

	s.printf("Database seeding completed successfully!")

	return &Result{
		Users:    len(users),
		Listings: len(listings),
		Bookings: bookings,
		Reviews:  reviews,
	}, nil
}

// createUsers returns every user it touched, matched or created.
func (s *Seeder) createUsers(ctx context.Context, count int) ([]*domain.User, error) {
	entries := s.catalog.Users
	users := make([]*domain.User, 0, count)
	created := 0

	for i := 0; i < count; i++ {
		entry := entries[i%len(entries)]
		username, email := entry.Username, entry.Email
		if i >= len(entries) {
			username = fmt.Sprintf("%s%d", entry.Username, i)
			email = fmt.Sprintf("%s%d@example.com", entry.LocalPart(), i)
		}

		existing, err := s.users.GetByUsername(ctx, username)
		if err == nil {
			users = append(users, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get user %q: %w", username, err)
		}

		defaults := &domain.User{
			Email:     email,
			FirstName: entry.FirstName,
			LastName:  entry.LastName,
		}
		if s.hash != nil {
			hash, err := s.hash(DefaultPassword)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			defaults.PasswordHash = hash
		}

		u, isNew, err := s.users.GetOrCreate(ctx, username, defaults)
		if err != nil {
			return nil, fmt.Errorf("get or create user %q: %w", username, err)
		}
		if isNew {
			created++
		}
		users = append(users, u)
	}

	metrics.AddSeedRows("users", created)
	s.log.Info("users seeded", "requested", count, "created", created)
	return users, nil
}

// createListings returns only the listings created by this run.
func (s *Seeder) createListings(ctx context.Context, count int, users []*domain.User) ([]*domain.Listing, error) {
	if count > 0 && len(users) == 0 {
		s.log.Warn("no users available, skipping listings", "requested", count)
		return nil, nil
	}

	entries := s.catalog.Listings
	var listings []*domain.Listing

	for i := 0; i < count; i++ {
		entry := entries[i%len(entries)]
		owner := users[s.rng.IntN(len(users))]

		title := entry.Title
		if i >= len(entries) {
			title = fmt.Sprintf("%s %d", entry.Title, i/len(entries)+1)
		}

		l, isNew, err := s.listings.GetOrCreate(ctx, title, owner.ID, &domain.Listing{
			Description:   entry.Description,
			Location:      entry.Location,
			PricePerNight: entry.PricePerNight,
		})
		if err != nil {
			return nil, fmt.Errorf("get or create listing %q: %w", title, err)
		}
		if isNew {
			l.Owner = owner
			listings = append(listings, l)
		}
	}

	metrics.AddSeedRows("listings", len(listings))
	return listings, nil
}

func (s *Seeder) createBookings(ctx context.Context, listings []*domain.Listing, users []*domain.User) int {
	draws := min(maxBookings, 2*len(listings))
	today := domain.TruncateDate(s.now())
	created := 0

	for n := 0; n < draws; n++ {
		l := listings[s.rng.IntN(len(listings))]
		guest, ok := s.pickGuest(users, l.OwnerID)
		if !ok {
			s.log.Debug("no eligible guest for listing", "listing_id", l.ID)
			continue
		}

		start := today.AddDate(0, 0, s.between(1, 90))
		end := start.AddDate(0, 0, s.between(1, 14))

		_, isNew, err := s.bookings.GetOrCreate(ctx, &domain.Booking{
			ListingID: l.ID,
			UserID:    guest.ID,
			StartDate: start,
			EndDate:   end,
			Guests:    s.between(1, 6),
		})
		if err != nil {
			s.log.Debug("booking draw skipped", "listing_id", l.ID, "user_id", guest.ID, "err", err)
			continue
		}
		if isNew {
			created++
		}
	}

	metrics.AddSeedRows("bookings", created)
	return created
}

func (s *Seeder) createReviews(ctx context.Context, listings []*domain.Listing, users []*domain.User) int {
	comments := s.catalog.Comments
	created := 0

	for _, l := range listings[:min(reviewedListings, len(listings))] {
		draws := s.between(minReviewsPerItem, maxReviewsPerItem)
		for n := 0; n < draws; n++ {
			author, ok := s.pickGuest(users, l.OwnerID)
			if !ok {
				s.log.Debug("no eligible reviewer for listing", "listing_id", l.ID)
				continue
			}

			_, isNew, err := s.reviews.GetOrCreate(ctx, &domain.Review{
				ListingID: l.ID,
				UserID:    author.ID,
				Rating:    s.between(minRating, maxRating),
				Comment:   comments[s.rng.IntN(len(comments))],
			})
			if err != nil {
				s.log.Debug("review draw skipped", "listing_id", l.ID, "user_id", author.ID, "err", err)
				continue
			}
			if isNew {
				created++
			}
		}
	}

	metrics.AddSeedRows("reviews", created)
	return created
}

// pickGuest draws a user other than the listing owner.
func (s *Seeder) pickGuest(users []*domain.User, ownerID int64) (*domain.User, bool) {
	eligible := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.ID != ownerID {
			eligible = append(eligible, u)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}
	return eligible[s.rng.IntN(len(eligible))], true
}

// between returns a uniform int in [lo, hi].
func (s *Seeder) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *Seeder) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
