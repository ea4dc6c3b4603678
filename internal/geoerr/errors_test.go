package geoerr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestSentinels_MatchAfterWrap(t *testing.T) {
	sentinels := []error{
		ErrMalformedInput,
		ErrUnsupportedCRS,
		ErrReferenceNotFound,
		ErrAttributeNotFound,
		ErrInvalidParameter,
		ErrUnsupportedFormat,
	}
	for _, s := range sentinels {
		t.Run(s.Error(), func(t *testing.T) {
			wrapped := eris.Wrapf(s, "stage %d", 2)
			assert.True(t, eris.Is(wrapped, s))
			assert.Contains(t, wrapped.Error(), s.Error())
		})
	}
}

func TestSentinels_Distinct(t *testing.T) {
	err := eris.Wrap(ErrUnsupportedCRS, "reproject")
	assert.False(t, eris.Is(err, ErrUnsupportedFormat))
	assert.False(t, eris.Is(err, ErrMalformedInput))
}

func TestIOError(t *testing.T) {
	err := NewIOError("create", "/nope/out.csv", os.ErrPermission)

	assert.Equal(t, "create /nope/out.csv: permission denied", err.Error())
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.True(t, IsIO(err))
	assert.True(t, IsIO(fmt.Errorf("export: %w", err)))
}

func TestIsIO_Negative(t *testing.T) {
	assert.False(t, IsIO(nil))
	assert.False(t, IsIO(errors.New("plain")))
	assert.False(t, IsIO(ErrUnsupportedFormat))
}
