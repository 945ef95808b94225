package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
)

func TestError_Is(t *testing.T) {
	wrapped := fmt.Errorf("get movie: %w", ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrAlreadyExists)

	caused := ErrEmailExists.WithCause(errors.New("UNIQUE constraint failed"))
	assert.ErrorIs(t, caused, ErrEmailExists)
	assert.NotErrorIs(t, caused, ErrFavoriteExists, "same kind, different sentinel")
	assert.Contains(t, caused.Error(), "UNIQUE constraint failed")
}

func TestCode(t *testing.T) {
	code, ok := Code(fmt.Errorf("wrap: %w", ErrFavoriteExists))
	assert.True(t, ok)
	assert.Equal(t, domainerrors.CodeAlreadyExists, code)

	_, ok = Code(errors.New("plain"))
	assert.False(t, ok)
}
