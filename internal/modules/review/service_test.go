package review

import (
	"context"
	"errors"
	"testing"

	"alxtravel/internal/domain"
	"alxtravel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if args.Error(0) == nil {
		rv.ID = 9
		rv.User = &domain.User{ID: rv.UserID, Username: "jane_smith"}
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, listingID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Summary(ctx context.Context, listingID int64) (*repository.RatingSummary, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RatingSummary), args.Error(1)
}

type MockListingGate struct {
	mock.Mock
}

func (m *MockListingGate) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyReviewCreated(ctx context.Context, ownerID int64, r *domain.Review) {
	m.Called(ctx, ownerID, r)
}

func ownedListing() *domain.Listing {
	return &domain.Listing{ID: 4, Title: "Downtown Loft", OwnerID: 1}
}

func TestCreate_Success(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingGate)
	notifs := new(MockNotifier)

	listings.On("GetByID", mock.Anything, int64(4)).Return(ownedListing(), nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.ListingID == 4 && rv.UserID == 2 && rv.Rating == 5
	})).Return(nil)
	notifs.On("NotifyReviewCreated", mock.Anything, int64(1), mock.Anything).Return()

	svc := NewService(reviews, listings, notifs)
	res, err := svc.Create(context.Background(), 2, 4, CreateReviewRequest{Rating: 5, Comment: "Amazing place!"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ID)
	assert.Equal(t, "jane_smith", res.User)
	notifs.AssertExpectations(t)
}

func TestCreate_InvalidRating(t *testing.T) {
	svc := NewService(new(MockReviewRepository), new(MockListingGate), nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 2, 4, CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRequest, "rating %d", rating)
	}
}

func TestCreate_SelfReview(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingGate)
	listings.On("GetByID", mock.Anything, int64(4)).Return(ownedListing(), nil)

	svc := NewService(reviews, listings, nil)
	_, err := svc.Create(context.Background(), 1, 4, CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrSelfReview)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Duplicate(t *testing.T) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingGate)
	listings.On("GetByID", mock.Anything, int64(4)).Return(ownedListing(), nil)
	reviews.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: reviews.listing_id, reviews.user_id"))

	svc := NewService(reviews, listings, nil)
	_, err := svc.Create(context.Background(), 2, 4, CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreate_UnknownListing(t *testing.T) {
	listings := new(MockListingGate)
	listings.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(new(MockReviewRepository), listings, nil)
	_, err := svc.Create(context.Background(), 2, 77, CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByListing_Summary(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("GetByListing", mock.Anything, int64(4), 0, 0).Return([]domain.Review{
		{ID: 1, ListingID: 4, Rating: 5, User: &domain.User{Username: "bob_wilson"}},
		{ID: 2, ListingID: 4, Rating: 4, User: &domain.User{Username: "alice_brown"}},
	}, nil)
	reviews.On("Summary", mock.Anything, int64(4)).Return(&repository.RatingSummary{Count: 2, Average: 4.5}, nil)

	svc := NewService(reviews, new(MockListingGate), nil)
	out, err := svc.GetByListing(context.Background(), 4, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Count)
	assert.Equal(t, 4.5, out.Average)
	require.Len(t, out.Reviews, 2)
	assert.Equal(t, "bob_wilson", out.Reviews[0].User)
}
