package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := Conflict("username already taken")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, Conflict("username already taken")))
	assert.False(t, errors.Is(err, Conflict("email already taken")))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "User not found", NotFound("User not found").Error())
	assert.Equal(t, "FORBIDDEN", ErrForbidden.Error())
	assert.Equal(t, "Username must be between 7 and 20 characters",
		Validation("Username must be between %d and %d characters", 7, 20).Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"forbidden", Forbidden("no"), KindForbidden},
		{"not found", fmt.Errorf("ctx: %w", NotFound("x")), KindNotFound},
		{"conflict", ErrConflict, KindConflict},
		{"internal", ErrInternal, KindSystem},
		{"plain", errors.New("db down"), KindSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(Forbidden("no")))
	assert.False(t, IsDomain(ErrInternal))
	assert.False(t, IsDomain(errors.New("boom")))
}
