package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorSetCauseOnce(t *testing.T) {
	perr := NewParseError("broken", &Locator{Line: 3, Col: 7})
	cause := errors.New("underlying")

	require.NoError(t, perr.SetCause(cause))
	assert.Equal(t, cause, perr.Cause())
	assert.True(t, errors.Is(perr, cause))

	err := perr.SetCause(errors.New("second"))
	assert.Equal(t, ErrCauseAlreadySet, err)
	assert.Equal(t, cause, perr.Cause(), "rejected second cause must not overwrite the first")
}

func TestParseErrorSelfCause(t *testing.T) {
	perr := NewParseError("broken", nil)
	assert.Equal(t, ErrSelfCause, perr.SetCause(perr))
	assert.Nil(t, perr.Cause())
}

func TestParseErrorMessage(t *testing.T) {
	perr := NewParseError("unexpected thing", &Locator{Line: 2, Col: 14})
	assert.Equal(t, "2:14: unexpected thing", perr.Error())

	require.NoError(t, perr.SetCause(errors.New("boom")))
	assert.Equal(t, "2:14: unexpected thing: boom", perr.Error())

	bare := NewParseError("no location", nil)
	assert.Equal(t, "no location", bare.Error())
}

func TestConfigErrorMessage(t *testing.T) {
	err := errNotRecognized("feature", "bogus")
	assert.Equal(t, `feature not recognized: "bogus"`, err.Error())

	plain := &ConfigError{Reason: "parse already in progress"}
	assert.Equal(t, "parse already in progress", plain.Error())
}
