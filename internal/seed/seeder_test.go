package seed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"alxtravel/internal/database"
	"alxtravel/internal/domain"
	"alxtravel/internal/pkg/logger"
	"alxtravel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestSeeder(db *gorm.DB, seed int64, out *bytes.Buffer) *Seeder {
	return NewSeeder(Config{
		Users:        repository.NewUserRepository(db),
		Listings:     repository.NewListingRepository(db),
		Bookings:     repository.NewBookingRepository(db),
		Reviews:      repository.NewReviewRepository(db),
		Rand:         NewRand(seed),
		HashPassword: func(p string) (string, error) { return "hashed:" + p, nil },
		Out:          out,
		Logger:       logger.Discard().Logger,
		Now:          func() time.Time { return time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) },
	})
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Users, 5)
	assert.Len(t, c.Listings, 10)
	assert.Len(t, c.Comments, 10)
	assert.Equal(t, "john_doe", c.Users[0].Username)
	assert.Equal(t, "john", c.Users[0].LocalPart())
	assert.Equal(t, "Cozy Beach House", c.Listings[0].Title)
	assert.Equal(t, 200.0, c.Listings[0].PricePerNight)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("users: []\nlistings: []\ncomments: []\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("users: [\n"))
	assert.Error(t, err)
}

func TestRun_Defaults(t *testing.T) {
	db := testDB(t)
	var out bytes.Buffer

	res, err := newTestSeeder(db, 1, &out).Run(context.Background(), Options{Users: DefaultUsers, Listings: DefaultListings})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Users)
	assert.Equal(t, 10, res.Listings)
	assert.LessOrEqual(t, res.Bookings, 15)
	assert.LessOrEqual(t, res.Reviews, 24)

	assert.Equal(t, int64(5), count(t, db, &domain.User{}))
	assert.Equal(t, int64(10), count(t, db, &domain.Listing{}))
	assert.Equal(t, int64(res.Bookings), count(t, db, &domain.Booking{}))
	assert.Equal(t, int64(res.Reviews), count(t, db, &domain.Review{}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Starting database seeding...", lines[0])
	assert.Equal(t, "Created 5 users", lines[1])
	assert.Equal(t, "Created 10 listings", lines[2])
	assert.Equal(t, fmt.Sprintf("Created %d bookings", res.Bookings), lines[3])
	assert.Equal(t, fmt.Sprintf("Created %d reviews", res.Reviews), lines[4])
	assert.Equal(t, "Database seeding completed successfully!", lines[5])

	var u domain.User
	require.NoError(t, db.Where("username = ?", "john_doe").First(&u).Error)
	assert.Equal(t, "john@example.com", u.Email)
	assert.Equal(t, "hashed:"+DefaultPassword, u.PasswordHash)
}

func TestRun_NeverSelfBooksOrSelfReviews(t *testing.T) {
	db := testDB(t)

	for seed := int64(1); seed <= 3; seed++ {
		_, err := newTestSeeder(db, seed, new(bytes.Buffer)).Run(context.Background(), Options{Users: 3, Listings: 20})
		require.NoError(t, err)
	}

	var selfBookings int64
	require.NoError(t, db.Model(&domain.Booking{}).
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("listings.owner_id = bookings.user_id").
		Count(&selfBookings).Error)
	assert.Zero(t, selfBookings)

	var selfReviews int64
	require.NoError(t, db.Model(&domain.Review{}).
		Joins("JOIN listings ON listings.id = reviews.listing_id").
		Where("listings.owner_id = reviews.user_id").
		Count(&selfReviews).Error)
	assert.Zero(t, selfReviews)

	var bookings []domain.Booking
	require.NoError(t, db.Find(&bookings).Error)
	for _, b := range bookings {
		assert.True(t, b.EndDate.After(b.StartDate), "booking %d", b.ID)
		assert.GreaterOrEqual(t, b.Guests, 1)
		assert.LessOrEqual(t, b.Guests, 6)
	}

	var reviews []domain.Review
	require.NoError(t, db.Find(&reviews).Error)
	for _, rv := range reviews {
		assert.GreaterOrEqual(t, rv.Rating, 3)
		assert.LessOrEqual(t, rv.Rating, 5)
	}
}

func TestRun_RerunDoesNotDuplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	first, err := newTestSeeder(db, 7, new(bytes.Buffer)).Run(ctx, Options{Users: 5, Listings: 10})
	require.NoError(t, err)

	second, err := newTestSeeder(db, 7, new(bytes.Buffer)).Run(ctx, Options{Users: 5, Listings: 10})
	require.NoError(t, err)

	assert.Equal(t, 5, second.Users, "matched users are still returned")
	assert.Zero(t, second.Listings, "same seed picks the same owners")
	assert.Equal(t, int64(5), count(t, db, &domain.User{}))
	assert.Equal(t, int64(first.Listings), count(t, db, &domain.Listing{}))

	var dupUsers int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM (SELECT username FROM users GROUP BY username HAVING COUNT(*) > 1) d",
	).Scan(&dupUsers).Error)
	assert.Zero(t, dupUsers)

	var dupListings int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM (SELECT title, owner_id FROM listings GROUP BY title, owner_id HAVING COUNT(*) > 1) d",
	).Scan(&dupListings).Error)
	assert.Zero(t, dupListings)
}

func TestRun_SingleUserSingleListing(t *testing.T) {
	db := testDB(t)

	res, err := newTestSeeder(db, 3, new(bytes.Buffer)).Run(context.Background(), Options{Users: 1, Listings: 1})
	require.NoError(t, err)

	assert.Equal(t, &Result{Users: 1, Listings: 1, Bookings: 0, Reviews: 0}, res)
	assert.Zero(t, count(t, db, &domain.Booking{}))
	assert.Zero(t, count(t, db, &domain.Review{}))
}

func TestRun_SuffixesBeyondCatalog(t *testing.T) {
	db := testDB(t)

	_, err := newTestSeeder(db, 5, new(bytes.Buffer)).Run(context.Background(), Options{Users: 7, Listings: 12})
	require.NoError(t, err)

	var u domain.User
	require.NoError(t, db.Where("username = ?", "jane_smith6").First(&u).Error)
	assert.Equal(t, "jane6@example.com", u.Email)

	var l domain.Listing
	require.NoError(t, db.Where("title = ?", "Modern City Apartment 2").First(&l).Error)
	assert.Equal(t, "New York, NY", l.Location)
	assert.Equal(t, int64(12), count(t, db, &domain.Listing{}))
}

func TestRun_NoUsers(t *testing.T) {
	db := testDB(t)

	res, err := newTestSeeder(db, 1, new(bytes.Buffer)).Run(context.Background(), Options{Users: 0, Listings: 4})
	require.NoError(t, err)
	assert.Equal(t, &Result{}, res)
}

func TestRun_RejectsNegativeCounts(t *testing.T) {
	db := testDB(t)

	_, err := newTestSeeder(db, 1, new(bytes.Buffer)).Run(context.Background(), Options{Users: -1, Listings: 1})
	assert.Error(t, err)
}

func TestRun_HashesOnlyNewUsers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	hashes := 0
	newSeeder := func() *Seeder {
		s := newTestSeeder(db, 3, new(bytes.Buffer))
		s.hash = func(p string) (string, error) {
			hashes++
			return "hashed:" + p, nil
		}
		return s
	}

	_, err := newSeeder().Run(ctx, Options{Users: 3, Listings: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, hashes)

	_, err = newSeeder().Run(ctx, Options{Users: 5, Listings: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, hashes, "existing users are matched without hashing")
	assert.Equal(t, int64(5), count(t, db, &domain.User{}))
}
