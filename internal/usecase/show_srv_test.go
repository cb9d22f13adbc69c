package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"movie-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySeatCache is a storing AvailabilityCache fake. Values round
// trip through JSON like they do with the real cache.
type memorySeatCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]byte
}

func newMemorySeatCache() *memorySeatCache {
	return &memorySeatCache{entries: make(map[uuid.UUID][]byte)}
}

func (c *memorySeatCache) Get(ctx context.Context, showID uuid.UUID, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[showID]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memorySeatCache) Set(ctx context.Context, showID uuid.UUID, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[showID] = raw
	return nil
}

func (c *memorySeatCache) InvalidateShow(ctx context.Context, showID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, showID)
	return nil
}

func newShowEnv(t *testing.T) (ShowService, *bookingEnv, *memorySeatCache) {
	t.Helper()

	env := newBookingEnv(t)
	seatCache := newMemorySeatCache()
	repo := newFakeRepository(env.shows, env.seats, env.ledger, env.bookings)
	svc := NewShowService(repo, seatCache, zap.NewNop())

	return svc, env, seatCache
}

func TestGetShowAvailability(t *testing.T) {
	svc, env, _ := newShowEnv(t)
	ctx := context.Background()

	// Claim A1 for some booking.
	conflicts, err := env.ledger.TryClaim(ctx, env.show.ID, []uuid.UUID{env.seatA1.ID}, uuid.New())
	require.NoError(t, err)
	require.Empty(t, conflicts)

	resp, err := svc.GetShowAvailability(ctx, env.show.ID.String())
	require.NoError(t, err)
	require.Len(t, resp.Seats, 3)

	available := make(map[string]bool, len(resp.Seats))
	for _, seat := range resp.Seats {
		available[seat.ID] = seat.Available
	}
	assert.False(t, available[env.seatA1.ID.String()])
	assert.True(t, available[env.seatA2.ID.String()])
	assert.True(t, available[env.seatA3.ID.String()])
}

func TestGetShowAvailability_ServedFromCache(t *testing.T) {
	svc, env, seatCache := newShowEnv(t)
	ctx := context.Background()

	first, err := svc.GetShowAvailability(ctx, env.show.ID.String())
	require.NoError(t, err)

	// A new claim is invisible until the cache entry is dropped.
	_, err = env.ledger.TryClaim(ctx, env.show.ID, []uuid.UUID{env.seatA1.ID}, uuid.New())
	require.NoError(t, err)

	cached, err := svc.GetShowAvailability(ctx, env.show.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	require.NoError(t, seatCache.InvalidateShow(ctx, env.show.ID))

	fresh, err := svc.GetShowAvailability(ctx, env.show.ID.String())
	require.NoError(t, err)
	for _, seat := range fresh.Seats {
		if seat.ID == env.seatA1.ID.String() {
			assert.False(t, seat.Available)
		}
	}
}

func TestGetShowAvailability_UnknownShow(t *testing.T) {
	svc, _, _ := newShowEnv(t)

	_, err := svc.GetShowAvailability(context.Background(), uuid.NewString())
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestDeactivateShow(t *testing.T) {
	svc, env, _ := newShowEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.DeactivateShow(ctx, env.show.ID.String()))

	show, err := env.shows.FindByID(ctx, env.show.ID)
	require.NoError(t, err)
	assert.False(t, show.Active)

	t.Run("unknown show", func(t *testing.T) {
		err := svc.DeactivateShow(ctx, uuid.NewString())
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func TestGetShowByID_MalformedID(t *testing.T) {
	svc, _, _ := newShowEnv(t)

	_, err := svc.GetShowByID(context.Background(), "not-a-uuid")
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}
