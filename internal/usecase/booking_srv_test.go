package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingEnv struct {
	shows    *fakeShowRepo
	seats    *fakeSeatRepo
	ledger   *fakeSeatLedger
	bookings *fakeBookingRepo
	cache    *fakeSeatCache
	svc      BookingService

	show   *entity.Show
	seatA1 *entity.Seat
	seatA2 *entity.Seat
	seatA3 *entity.Seat
	userID string
}

// newBookingEnv seeds one active show at price 10.0 with three seats
// A1, A2, A3 on its screen.
func newBookingEnv(t *testing.T) *bookingEnv {
	t.Helper()

	env := &bookingEnv{
		shows:    newFakeShowRepo(),
		seats:    newFakeSeatRepo(),
		ledger:   newFakeSeatLedger(),
		bookings: newFakeBookingRepo(),
		cache:    &fakeSeatCache{},
		userID:   uuid.NewString(),
	}

	repo := newFakeRepository(env.shows, env.seats, env.ledger, env.bookings)
	env.svc = NewBookingService(repo, env.cache, zap.NewNop())

	screenID := uuid.New()
	now := time.Now()

	env.show = &entity.Show{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:   uuid.New(),
		ScreenID:  screenID,
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(26 * time.Hour),
		Price:     10.0,
		Active:    true,
	}
	require.NoError(t, env.shows.Create(context.Background(), env.show))

	mkSeat := func(row string, col int) *entity.Seat {
		seat := &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			ScreenID:   screenID,
			Label:      fmt.Sprintf("%s%d", row, col),
			Row:        row,
			Col:        col,
		}
		require.NoError(t, env.seats.Create(context.Background(), seat))
		return seat
	}
	env.seatA1 = mkSeat("A", 1)
	env.seatA2 = mkSeat("A", 2)
	env.seatA3 = mkSeat("A", 3)

	return env
}

func (env *bookingEnv) book(userID string, seats ...*entity.Seat) (string, error) {
	seatIDs := make([]string, len(seats))
	for i, seat := range seats {
		seatIDs[i] = seat.ID.String()
	}
	resp, err := env.svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		ShowID:  env.show.ID.String(),
		SeatIDs: seatIDs,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func TestCreateBooking_Success(t *testing.T) {
	env := newBookingEnv(t)

	resp, err := env.svc.CreateBooking(context.Background(), env.userID, &request.CreateBookingRequest{
		ShowID:  env.show.ID.String(),
		SeatIDs: []string{env.seatA1.ID.String(), env.seatA2.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, resp.TotalPrice)
	assert.False(t, resp.Cancelled)
	assert.Len(t, resp.SeatLabels, 2)
	assert.Equal(t, 2, env.ledger.claimCount(env.show.ID))
	assert.Equal(t, 1, env.cache.invalidationCount())
}

func TestCreateBooking_OverlapRefusedWithConflictingSeats(t *testing.T) {
	env := newBookingEnv(t)

	// First booking takes A1 and A2.
	_, err := env.book(env.userID, env.seatA1, env.seatA2)
	require.NoError(t, err)

	// Second user wants A2 and A3. Only A2 conflicts, and the refusal
	// must name exactly that seat.
	otherUser := uuid.NewString()
	_, err = env.book(otherUser, env.seatA2, env.seatA3)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeSeatsUnavailable, appErr.Code)
	assert.Equal(t, []string{env.seatA2.ID.String()}, appErr.Details["seat_ids"])

	// Nothing was claimed for the refused booking, so A3 is still free.
	_, err = env.book(otherUser, env.seatA3)
	require.NoError(t, err)
}

func TestCreateBooking_ShowNotFound(t *testing.T) {
	env := newBookingEnv(t)

	_, err := env.svc.CreateBooking(context.Background(), env.userID, &request.CreateBookingRequest{
		ShowID:  uuid.NewString(),
		SeatIDs: []string{env.seatA1.ID.String()},
	})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestCreateBooking_ShowInactive(t *testing.T) {
	env := newBookingEnv(t)
	require.NoError(t, env.shows.Deactivate(context.Background(), env.show.ID))

	_, err := env.book(env.userID, env.seatA1)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeShowInactive, appErr.Code)
}

func TestCreateBooking_SeatNotFound(t *testing.T) {
	env := newBookingEnv(t)

	_, err := env.svc.CreateBooking(context.Background(), env.userID, &request.CreateBookingRequest{
		ShowID:  env.show.ID.String(),
		SeatIDs: []string{uuid.NewString()},
	})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestCreateBooking_SeatFromAnotherScreen(t *testing.T) {
	env := newBookingEnv(t)

	foreign := &entity.Seat{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ScreenID:   uuid.New(),
		Label:      "B1",
		Row:        "B",
		Col:        1,
	}
	require.NoError(t, env.seats.Create(context.Background(), foreign))

	_, err := env.book(env.userID, env.seatA1, foreign)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeSeatWrongScreen, appErr.Code)

	// The whole request is refused, A1 stays free.
	assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	env := newBookingEnv(t)

	t.Run("empty seat list", func(t *testing.T) {
		_, err := env.svc.CreateBooking(context.Background(), env.userID, &request.CreateBookingRequest{
			ShowID:  env.show.ID.String(),
			SeatIDs: []string{},
		})
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("duplicate seat ids", func(t *testing.T) {
		_, err := env.book(env.userID, env.seatA1, env.seatA1)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("malformed seat id", func(t *testing.T) {
		_, err := env.svc.CreateBooking(context.Background(), env.userID, &request.CreateBookingRequest{
			ShowID:  env.show.ID.String(),
			SeatIDs: []string{"not-a-uuid"},
		})
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}

func TestCreateBooking_PersistFailureReleasesClaim(t *testing.T) {
	env := newBookingEnv(t)
	env.bookings.failCreate = errors.New("connection reset")

	_, err := env.book(env.userID, env.seatA1, env.seatA2)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeTransientStore, appErr.Code)

	// The compensating release freed the seats, so retrying works.
	env.bookings.failCreate = nil
	_, err = env.book(env.userID, env.seatA1, env.seatA2)
	require.NoError(t, err)
}

func TestCreateBooking_PriceFrozenAtCreation(t *testing.T) {
	env := newBookingEnv(t)

	bookingID, err := env.book(env.userID, env.seatA1, env.seatA2)
	require.NoError(t, err)

	env.shows.setPrice(env.show.ID, 99.0)

	resp, err := env.svc.GetBookingByID(context.Background(), env.userID, false, bookingID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, resp.TotalPrice)
}

func TestCreateBooking_ConcurrentOverlapExactlyOneWins(t *testing.T) {
	env := newBookingEnv(t)

	var wg sync.WaitGroup
	results := make([]error, 2)
	users := []string{uuid.NewString(), uuid.NewString()}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.book(users[i], env.seatA1, env.seatA2)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeSeatsUnavailable, appErr.Code)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 2, env.ledger.claimCount(env.show.ID))
}

func TestCreateBooking_ConcurrentDisjointBothSucceed(t *testing.T) {
	env := newBookingEnv(t)

	var wg sync.WaitGroup
	results := make([]error, 2)
	seatSets := [][]*entity.Seat{{env.seatA1}, {env.seatA2, env.seatA3}}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.book(uuid.NewString(), seatSets[i]...)
		}(i)
	}
	wg.Wait()

	require.NoError(t, results[0])
	require.NoError(t, results[1])
	assert.Equal(t, 3, env.ledger.claimCount(env.show.ID))
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels and seats become free", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1, env.seatA2)
		require.NoError(t, err)

		resp, err := env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)
		assert.True(t, resp.Cancelled)
		assert.Equal(t, 20.0, resp.TotalPrice)
		assert.Len(t, resp.SeatLabels, 2)
		assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))

		// Round trip: another user can now book the same seats.
		_, err = env.book(uuid.NewString(), env.seatA1, env.seatA2)
		require.NoError(t, err)
	})

	t.Run("second cancel fails", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1)
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeAlreadyCancelled, appErr.Code)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1)
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(context.Background(), uuid.NewString(), false, bookingID)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)

		// The booking is untouched.
		assert.Equal(t, 1, env.ledger.claimCount(env.show.ID))
	})

	t.Run("admin may cancel any booking", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1)
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(context.Background(), uuid.NewString(), true, bookingID)
		require.NoError(t, err)
		assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newBookingEnv(t)

		_, err := env.svc.CancelBooking(context.Background(), env.userID, false, uuid.NewString())
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})

	t.Run("booked seat rows survive cancellation", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1, env.seatA2)
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)

		resp, err := env.svc.GetBookingByID(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)
		assert.True(t, resp.Cancelled)
		assert.Len(t, resp.SeatLabels, 2)
	})
}

func TestCancelBooking_ConcurrentExactlyOneWins(t *testing.T) {
	env := newBookingEnv(t)
	bookingID, err := env.book(env.userID, env.seatA1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		}(i)
	}
	wg.Wait()

	successes, alreadyCancelled := 0, 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeAlreadyCancelled, appErr.Code)
		alreadyCancelled++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, alreadyCancelled)
	assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))
}

// flakyBookedSeatRepo fails a configured number of reads before
// delegating to the real fake.
type flakyBookedSeatRepo struct {
	inner repository.BookedSeatRepository
	mu    sync.Mutex
	fail  int
}

func (f *flakyBookedSeatRepo) FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail > 0 {
		f.fail--
		return nil, errors.New("connection reset")
	}
	return f.inner.FindSeatsByBookingID(ctx, bookingID)
}

// A cancel interrupted by a transient store fault must stay fully
// retryable: either nothing happened yet, or the flag flip and the
// claim release committed together. Seats may never end up claimed by
// a booking that reads as cancelled.
func TestCancelBooking_TransientFailureDoesNotStrandSeats(t *testing.T) {
	t.Run("store failure during cancel keeps booking active", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1)
		require.NoError(t, err)

		env.bookings.failCancel = errors.New("connection reset")
		_, err = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeTransientStore, appErr.Code)
		assert.Equal(t, 1, env.ledger.claimCount(env.show.ID))

		// Nothing was flipped, so the retry wins (not ALREADY_CANCELLED)
		// and frees the seat for rebooking.
		env.bookings.failCancel = nil
		_, err = env.svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)
		assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))

		_, err = env.book(uuid.NewString(), env.seatA1)
		require.NoError(t, err)
	})

	t.Run("seat load failure leaves booking untouched", func(t *testing.T) {
		env := newBookingEnv(t)
		bookingID, err := env.book(env.userID, env.seatA1)
		require.NoError(t, err)

		repo := newFakeRepository(env.shows, env.seats, env.ledger, env.bookings)
		repo.BookedSeat = &flakyBookedSeatRepo{inner: repo.BookedSeat, fail: 1}
		svc := NewBookingService(repo, env.cache, zap.NewNop())

		_, err = svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.Error(t, err)
		assert.Equal(t, 1, env.ledger.claimCount(env.show.ID))

		// The booking is still active, so the same cancel retried
		// succeeds and releases the seat.
		_, err = svc.CancelBooking(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)
		assert.Equal(t, 0, env.ledger.claimCount(env.show.ID))

		_, err = env.book(uuid.NewString(), env.seatA1)
		require.NoError(t, err)
	})
}

func TestGetUserBookings(t *testing.T) {
	env := newBookingEnv(t)

	_, err := env.book(env.userID, env.seatA1)
	require.NoError(t, err)
	_, err = env.book(env.userID, env.seatA2)
	require.NoError(t, err)
	_, err = env.book(uuid.NewString(), env.seatA3)
	require.NoError(t, err)

	page, err := env.svc.GetUserBookings(context.Background(), env.userID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestGetBookingByID_Access(t *testing.T) {
	env := newBookingEnv(t)
	bookingID, err := env.book(env.userID, env.seatA1)
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		resp, err := env.svc.GetBookingByID(context.Background(), env.userID, false, bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, resp.ID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := env.svc.GetBookingByID(context.Background(), uuid.NewString(), false, bookingID)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("admin can read", func(t *testing.T) {
		resp, err := env.svc.GetBookingByID(context.Background(), uuid.NewString(), true, bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, resp.ID)
	})
}
