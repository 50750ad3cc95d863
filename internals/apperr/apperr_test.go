package apperr

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestKindMatchesThroughWrapping(t *testing.T) {
	cause := New(ErrInvalidObject, "check constraint violated")
	wrapped := Wrap(ErrUpdateFailed, "failed to update class", cause)

	// the outermost kind wins for classification
	require.Equal(t, ErrUpdateFailed, Kind(wrapped))

	// but the whole chain stays reachable
	require.ErrorIs(t, wrapped, ErrUpdateFailed)
	require.ErrorIs(t, wrapped, ErrInvalidObject)
	require.ErrorIs(t, wrapped, cause)
}

func TestKindOfPlainError(t *testing.T) {
	require.Nil(t, Kind(errors.New("boom")))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := Wrap(ErrAlreadyExists, "unique constraint violated", cause)
	require.Equal(t, "unique constraint violated: duplicate key value", err.Error())

	require.Equal(t, "item not found", New(ErrNotFound, "item not found").Error())
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(ErrNotFound, "x"), fiber.StatusNotFound},
		{New(ErrAlreadyExists, "x"), fiber.StatusBadRequest},
		{New(ErrInvalidObject, "x"), fiber.StatusBadRequest},
		{New(ErrCreationFailed, "x"), fiber.StatusBadRequest},
		{New(ErrUpdateFailed, "x"), fiber.StatusBadRequest},
		{New(ErrDeleteFailed, "x"), fiber.StatusBadRequest},
		{New(ErrExecutionFailed, "x"), fiber.StatusInternalServerError},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, StatusCode(tc.err), "err %v", tc.err)
	}
}
