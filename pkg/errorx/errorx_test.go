package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapKeepsCause(t *testing.T) {
	err := Wrapf(gorm.ErrRecordNotFound, CodeNotFound, "user id=%d", 7)

	assert.Equal(t, "user id=7: record not found", err.Error())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, CodeNotFound, GetCode(err))
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("boom")))
	assert.Equal(t, CodeForbidden, GetCode(fmt.Errorf("outer: %w", ErrForbidden)))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeForbidden, "not a party to this relationship")

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}
