package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError(t *testing.T) {
	err := ErrBusiness("time_conflict")

	assert.Equal(t, "time_conflict", err.Error())
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "other_code"))
	assert.False(t, IsBusiness(errors.New("plain"), "time_conflict"))

	code, ok := BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, "time_conflict", code)

	_, ok = BusinessCode(errors.New("plain"))
	assert.False(t, ok)
}

func TestBusinessErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("booking failed: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(wrapped, "time_conflict"))

	code, ok := BusinessCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "time_conflict", code)
}
