package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityNotFoundErrorsWrapErrNotFound(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		ErrCardNotFound,
		ErrSessionNotFound,
		ErrItemNotFound,
		ErrSettingNotFound,
	} {
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, IsNotFoundError(err))
	}

	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrCardNotFound)))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(nil))
}

func TestDuplicateErrors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrCardExists, ErrDuplicate)
	assert.True(t, IsDuplicateError(ErrCardExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("card", "update", "exec failed", cause)

	assert.Contains(t, err.Error(), "update operation on card failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)

	// Without a wrapped cause the message still reads cleanly.
	bare := NewStoreError("setting", "get", "missing key", nil)
	assert.Equal(t, "get operation on setting failed: missing key", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestStoreErrorPreservesSentinels(t *testing.T) {
	t.Parallel()

	err := NewStoreError("card", "get", "no row", ErrCardNotFound)
	assert.True(t, IsNotFoundError(err))
	assert.ErrorIs(t, err, ErrCardNotFound)
}
