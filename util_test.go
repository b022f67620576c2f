package easysh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatchPanicOrError(t *testing.T) {
	t.Run("no panic", func(t *testing.T) {
		require.NoError(t, CatchPanicOrError(func() error {
			return nil
		}))
	})
	t.Run("error passed through", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := CatchPanicOrError(func() error {
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
	})
	t.Run("panic with error", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := CatchPanicOrError(func() error {
			panic(errBoom)
		})
		require.ErrorIs(t, err, errBoom)
	})
	t.Run("panic with value", func(t *testing.T) {
		err := CatchPanicOrError(func() error {
			panic("runtime trouble")
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "runtime trouble")
	})
}
