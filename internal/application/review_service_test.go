package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	reviewDomain "github.com/glambook/service-booking/internal/domain/review"
	"github.com/glambook/service-booking/pkg/domain"
)

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*reviewDomain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*reviewDomain.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("review", id.String())
	}
	return rv, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	for _, rv := range r.reviews {
		if rv.BookingID() == bookingID {
			return rv, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByArtistID(_ context.Context, artistID uuid.UUID, page, limit int) ([]*reviewDomain.Review, int64, error) {
	var out []*reviewDomain.Review
	for _, rv := range r.reviews {
		if rv.ArtistID() == artistID {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) AverageRatingByArtist(_ context.Context, artistID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, rv := range r.reviews {
		if rv.ArtistID() == artistID {
			sum += int64(rv.Rating())
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *fakeReviewRepo) Save(_ context.Context, rv *reviewDomain.Review) error {
	r.reviews[rv.ID()] = rv
	return nil
}

type reviewFixture struct {
	svc         *ReviewService
	reviews     *fakeReviewRepo
	bookingRepo *fakeBookingRepo
}

func newReviewFixture(t *testing.T) (*reviewFixture, *serviceFixture) {
	t.Helper()
	bookings := newServiceFixture(t)
	f := &reviewFixture{
		reviews:     newFakeReviewRepo(),
		bookingRepo: bookings.repo,
	}
	f.svc = NewReviewService(f.reviews, f.bookingRepo, zap.NewNop())
	return f, bookings
}

func TestCreateReview(t *testing.T) {
	f, bookings := newReviewFixture(t)
	bk := bookings.seedBooking(t, bookingDomain.StatusCompleted)

	dto, err := f.svc.CreateReview(context.Background(), bk.CustomerID(), bk.ID(), CreateReviewRequest{
		Rating:  5,
		Comment: "flawless bridal makeup",
	})
	require.NoError(t, err)

	assert.Equal(t, bk.ID(), dto.BookingID)
	assert.Equal(t, bk.ArtistID(), dto.ArtistID)
	assert.Equal(t, 5, dto.Rating)
}

func TestCreateReview_OnlyBookingCustomer(t *testing.T) {
	f, bookings := newReviewFixture(t)
	bk := bookings.seedBooking(t, bookingDomain.StatusCompleted)

	_, err := f.svc.CreateReview(context.Background(), uuid.New(), bk.ID(), CreateReviewRequest{Rating: 4})
	require.Error(t, err)

	var forbidden *domain.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))
}

func TestCreateReview_OnlyCompletedBookings(t *testing.T) {
	f, bookings := newReviewFixture(t)

	for _, status := range []bookingDomain.BookingStatus{
		bookingDomain.StatusPending,
		bookingDomain.StatusConfirmed,
		bookingDomain.StatusInProgress,
	} {
		bk := bookings.seedBooking(t, status)
		_, err := f.svc.CreateReview(context.Background(), bk.CustomerID(), bk.ID(), CreateReviewRequest{Rating: 4})
		require.Error(t, err, "status %s", status)

		var invalid *domain.InvalidStateError
		assert.True(t, errors.As(err, &invalid), "status %s: got %T", status, err)
	}
}

func TestCreateReview_DuplicateIsConflict(t *testing.T) {
	f, bookings := newReviewFixture(t)
	bk := bookings.seedBooking(t, bookingDomain.StatusCompleted)

	_, err := f.svc.CreateReview(context.Background(), bk.CustomerID(), bk.ID(), CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.CreateReview(context.Background(), bk.CustomerID(), bk.ID(), CreateReviewRequest{Rating: 1})
	require.Error(t, err)

	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	f, bookings := newReviewFixture(t)
	bk := bookings.seedBooking(t, bookingDomain.StatusCompleted)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.CreateReview(context.Background(), bk.CustomerID(), bk.ID(), CreateReviewRequest{Rating: rating})
		require.Error(t, err, "rating %d", rating)

		var validation *domain.ValidationError
		assert.True(t, errors.As(err, &validation), "rating %d: got %T", rating, err)
	}
}

func TestGetArtistRating(t *testing.T) {
	f, bookings := newReviewFixture(t)

	bk1 := bookings.seedBooking(t, bookingDomain.StatusCompleted)
	_, err := f.svc.CreateReview(context.Background(), bk1.CustomerID(), bk1.ID(), CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	rating, err := f.svc.GetArtistRating(context.Background(), bk1.ArtistID())
	require.NoError(t, err)
	assert.Equal(t, 5.0, rating.AverageRating)
	assert.Equal(t, int64(1), rating.ReviewCount)

	// Artist with no reviews.
	empty, err := f.svc.GetArtistRating(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.AverageRating)
	assert.Zero(t, empty.ReviewCount)
}
