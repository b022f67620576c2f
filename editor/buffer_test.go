package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func typeString(b *lineBuffer, s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

func TestLineBuffer(t *testing.T) {
	t.Run("insert and cursor", func(t *testing.T) {
		var b lineBuffer
		require.True(t, b.Empty())
		typeString(&b, "helo")
		require.EqualValues(t, "helo", b.String())
		require.EqualValues(t, 4, b.Cursor())
		b.Left()
		b.Insert('l')
		require.EqualValues(t, "hello", b.String())
		require.EqualValues(t, 4, b.Cursor())
		require.EqualValues(t, 5, b.Len())
	})
	t.Run("backspace", func(t *testing.T) {
		var b lineBuffer
		require.False(t, b.Backspace())
		typeString(&b, "ab")
		require.True(t, b.Backspace())
		require.EqualValues(t, "a", b.String())
		b.Home()
		require.False(t, b.Backspace())
	})
	t.Run("delete at cursor", func(t *testing.T) {
		var b lineBuffer
		typeString(&b, "abc")
		b.Delete() // cursor at end, nothing to delete
		require.EqualValues(t, "abc", b.String())
		b.Home()
		b.Delete()
		require.EqualValues(t, "bc", b.String())
		require.EqualValues(t, 0, b.Cursor())
	})
	t.Run("movement clamps", func(t *testing.T) {
		var b lineBuffer
		typeString(&b, "ab")
		b.Right()
		require.EqualValues(t, 2, b.Cursor())
		b.Home()
		b.Left()
		require.EqualValues(t, 0, b.Cursor())
		b.End()
		require.EqualValues(t, 2, b.Cursor())
	})
	t.Run("kills", func(t *testing.T) {
		var b lineBuffer
		typeString(&b, "hello")
		b.Left()
		b.Left()
		b.KillToStart()
		require.EqualValues(t, "lo", b.String())
		require.EqualValues(t, 0, b.Cursor())

		b.Overwrite("hello")
		b.Left()
		b.Left()
		b.KillToEnd()
		require.EqualValues(t, "hel", b.String())
		require.EqualValues(t, 3, b.Cursor())
	})
	t.Run("overwrite and clear", func(t *testing.T) {
		var b lineBuffer
		typeString(&b, "old")
		b.Overwrite("brand new")
		require.EqualValues(t, "brand new", b.String())
		require.EqualValues(t, 9, b.Cursor())
		b.Clear()
		require.True(t, b.Empty())
		require.EqualValues(t, 0, b.Cursor())
	})
	t.Run("wide runes", func(t *testing.T) {
		var b lineBuffer
		typeString(&b, "aжb")
		require.EqualValues(t, "aжb", b.String())
		require.EqualValues(t, 3, b.Len())
		b.Left()
		b.Left()
		b.Delete()
		require.EqualValues(t, "ab", b.String())
	})
}
