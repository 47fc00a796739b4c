package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/errs"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errs.KindNotFound, errs.KindOf(errs.NotFound("x")))
	assert.Equal(t, errs.KindConflict, errs.KindOf(fmt.Errorf("wrapped: %w", errs.Conflict("dup"))))
	assert.Equal(t, errs.KindInternal, errs.KindOf(errors.New("boom")))
	assert.False(t, errs.Is(nil, errs.KindInternal))
}

func TestPublicHidesInternalCause(t *testing.T) {
	t.Parallel()

	msg, fields := errs.Public(errs.Internal(errors.New("socket closed"), "Failed to create order"))
	assert.Equal(t, "Internal server error", msg)
	assert.Nil(t, fields)

	msg, fields = errs.Public(errs.Field("email", "is required"))
	assert.Equal(t, "invalid input", msg)
	assert.Equal(t, map[string]string{"email": "is required"}, fields)
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := errs.Internal(cause, "store failure")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
