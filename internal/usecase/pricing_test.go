package usecase

import (
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPrice(t *testing.T) {
	show := &entity.Show{Price: 10.0}

	t.Run("multiplies price by seat count", func(t *testing.T) {
		total, err := TotalPrice(show, 2)
		require.NoError(t, err)
		assert.Equal(t, 20.0, total)
	})

	t.Run("single seat", func(t *testing.T) {
		total, err := TotalPrice(show, 1)
		require.NoError(t, err)
		assert.Equal(t, 10.0, total)
	})

	t.Run("rejects zero seats", func(t *testing.T) {
		_, err := TotalPrice(show, 0)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("rejects negative seat count", func(t *testing.T) {
		_, err := TotalPrice(show, -3)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("rejects nil show", func(t *testing.T) {
		_, err := TotalPrice(nil, 2)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}
