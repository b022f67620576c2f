package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("build and introspect", func(t *testing.T) {
		reg, err := NewRegistry([]Def{
			{Name: "write", Descriptor: "sqb", Fn: func(string, uint64, uint8) {}},
			{Name: "read", Descriptor: "s", Fn: func(string) {}},
			{Name: "reset", Descriptor: "v", Fn: func() {}},
			{Name: "append", Descriptor: "sqb", Fn: func(string, uint64, uint8) {}},
		})
		require.NoError(t, err)
		require.EqualValues(t, 4, reg.NumFunctions())
		require.EqualValues(t, []string{"append", "read", "reset", "write"}, reg.FunctionNames())
		funs := reg.Functions()
		require.EqualValues(t, 4, len(funs))
		require.EqualValues(t, FunInfo{Name: "append", Descriptor: "sqb"}, funs[0])
		require.EqualValues(t, FunInfo{Name: "reset", Descriptor: "v"}, funs[2])
	})
	t.Run("repeating name", func(t *testing.T) {
		_, err := NewRegistry([]Def{
			{Name: "f", Descriptor: "b", Fn: func(uint8) {}},
			{Name: "f", Descriptor: "s", Fn: func(string) {}},
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "repeating function name")
	})
	t.Run("empty name", func(t *testing.T) {
		_, err := NewRegistry([]Def{{Name: "", Descriptor: "b", Fn: func(uint8) {}}})
		require.Error(t, err)
	})
	t.Run("bad descriptor", func(t *testing.T) {
		_, err := NewRegistry([]Def{{Name: "f", Descriptor: "bk", Fn: func(uint8, uint8) {}}})
		require.Error(t, err)
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "", Fn: func() {}}})
		require.Error(t, err)
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "vv", Fn: func() {}}})
		require.Error(t, err)
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "sv", Fn: func(string) {}}})
		require.Error(t, err)
	})
	t.Run("signature mismatch", func(t *testing.T) {
		// wrong parameter type
		_, err := NewRegistry([]Def{{Name: "f", Descriptor: "b", Fn: func(uint16) {}}})
		require.Error(t, err)
		// wrong parameter count
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "bb", Fn: func(uint8) {}}})
		require.Error(t, err)
		// void must take no parameters
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "v", Fn: func(uint8) {}}})
		require.Error(t, err)
		// variadic not allowed
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "s", Fn: func(...string) {}}})
		require.Error(t, err)
		// at most one return value
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "s", Fn: func(string) (int, error) { return 0, nil }}})
		require.Error(t, err)
		// not a function at all
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "s", Fn: 42}})
		require.Error(t, err)
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "s", Fn: nil}})
		require.Error(t, err)
	})
	t.Run("one return value ok", func(t *testing.T) {
		_, err := NewRegistry([]Def{{Name: "f", Descriptor: "s", Fn: func(string) error { return nil }}})
		require.NoError(t, err)
	})
	t.Run("hex limit must be positive", func(t *testing.T) {
		_, err := NewRegistry([]Def{{Name: "f", Descriptor: "h", Fn: func([]byte) {}}}, 0)
		require.Error(t, err)
		_, err = NewRegistry([]Def{{Name: "f", Descriptor: "h", Fn: func([]byte) {}}}, 16)
		require.NoError(t, err)
	})
	t.Run("must panics", func(t *testing.T) {
		require.Panics(t, func() {
			MustNewRegistry([]Def{{Name: "f", Descriptor: "b", Fn: func(uint16) {}}})
		})
		require.NotPanics(t, func() {
			MustNewRegistry([]Def{{Name: "f", Descriptor: "b", Fn: func(uint8) {}}})
		})
	})
	t.Run("all type codes bind", func(t *testing.T) {
		reg, err := NewRegistry([]Def{{
			Name:       "all",
			Descriptor: "bwdqxBWDQXzZfFtcsh",
			Fn: func(uint8, uint16, uint32, uint64, Uint128, int8, int16, int32, int64, Int128, uint, int, float32, float64, bool, rune, string, []byte) {
			},
		}})
		require.NoError(t, err)
		require.EqualValues(t, 1, reg.NumFunctions())
	})
}
