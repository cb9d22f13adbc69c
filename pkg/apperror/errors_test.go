package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		err := NotFound("booking", "abc")
		appErr := As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, CodeNotFound, appErr.Code)
	})

	t.Run("wrapped error", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", Forbidden("nope"))
		appErr := As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, CodeForbidden, appErr.Code)
	})

	t.Run("foreign error", func(t *testing.T) {
		assert.Nil(t, As(errors.New("plain")))
	})
}

func TestHTTPStatusMapping(t *testing.T) {
	showID := uuid.New()
	cases := []struct {
		err    *Error
		status int
	}{
		{NotFound("show", showID.String()), http.StatusNotFound},
		{InvalidInput("bad"), http.StatusBadRequest},
		{ShowInactive(showID), http.StatusConflict},
		{SeatWrongScreen(showID), http.StatusBadRequest},
		{SeatsUnavailable([]uuid.UUID{showID}), http.StatusConflict},
		{AlreadyCancelled(showID), http.StatusConflict},
		{Forbidden("no"), http.StatusForbidden},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Conflict("dup"), http.StatusConflict},
		{TransientStore("db down", errors.New("io")), http.StatusServiceUnavailable},
		{Internal("boom", errors.New("io")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus, tc.err.Code)
	}
}

func TestSeatsUnavailableDetails(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := SeatsUnavailable([]uuid.UUID{a, b})

	assert.Equal(t, []string{a.String(), b.String()}, err.Details["seat_ids"])
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := TransientStore("claim seats", cause)

	assert.True(t, errors.Is(err, cause))
}
