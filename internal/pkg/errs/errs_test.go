//go:build unit

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	sentinel := errors.New("sentinel")

	t.Run("finds a marked sentinel", func(t *testing.T) {
		err := Mark(errors.New("driver failure"), sentinel)
		assert.True(t, Is(err, sentinel))
	})

	t.Run("finds a marked sentinel through further wrapping", func(t *testing.T) {
		err := Wrap(Mark(errors.New("driver failure"), sentinel), "claim failed")
		assert.True(t, Is(err, sentinel))
	})

	t.Run("finds a sentinel in a plain wrap chain", func(t *testing.T) {
		err := Wrap(sentinel, "claim failed")
		assert.True(t, Is(err, sentinel))
	})

	t.Run("marking a nil error returns the sentinel itself", func(t *testing.T) {
		err := Mark(nil, sentinel)
		assert.True(t, Is(err, sentinel))
	})

	t.Run("unrelated sentinels do not match", func(t *testing.T) {
		err := Mark(errors.New("driver failure"), errors.New("other"))
		assert.False(t, Is(err, sentinel))
	})
}
