package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryRing(t *testing.T) {
	t.Run("push trims and drops", func(t *testing.T) {
		h := newHistoryRing(10)
		require.True(t, h.Push("  greet alice  "))
		require.False(t, h.Push(""))
		require.False(t, h.Push("   \t"))
		require.False(t, h.Push("greet alice")) // consecutive duplicate
		require.True(t, h.Push("sum 1 2"))
		require.True(t, h.Push("greet alice")) // no longer consecutive
		require.EqualValues(t, []string{"greet alice", "sum 1 2", "greet alice"}, h.List())
	})
	t.Run("evicts oldest at capacity", func(t *testing.T) {
		h := newHistoryRing(3)
		for _, s := range []string{"a", "b", "c", "d"} {
			require.True(t, h.Push(s))
		}
		require.EqualValues(t, 3, h.Len())
		require.EqualValues(t, []string{"b", "c", "d"}, h.List())
	})
	t.Run("up clamps at the oldest", func(t *testing.T) {
		h := newHistoryRing(10)
		h.Push("a")
		h.Push("b")
		line, ok := h.Up()
		require.True(t, ok)
		require.EqualValues(t, "b", line)
		line, ok = h.Up()
		require.True(t, ok)
		require.EqualValues(t, "a", line)
		line, ok = h.Up()
		require.True(t, ok)
		require.EqualValues(t, "a", line)
	})
	t.Run("down past the newest lands on the fresh line", func(t *testing.T) {
		h := newHistoryRing(10)
		h.Push("a")
		h.Push("b")
		_, _ = h.Up()
		_, _ = h.Up()
		line, ok := h.Down()
		require.True(t, ok)
		require.EqualValues(t, "b", line)
		line, ok = h.Down()
		require.True(t, ok)
		require.EqualValues(t, "", line)
		_, ok = h.Down()
		require.False(t, ok)
	})
	t.Run("empty ring navigates nowhere", func(t *testing.T) {
		h := newHistoryRing(10)
		_, ok := h.Up()
		require.False(t, ok)
		_, ok = h.Down()
		require.False(t, ok)
		_, ok = h.Oldest()
		require.False(t, ok)
		_, ok = h.Newest()
		require.False(t, ok)
		_, ok = h.Last()
		require.False(t, ok)
		require.Empty(t, h.List())
	})
	t.Run("jumps and recall", func(t *testing.T) {
		h := newHistoryRing(10)
		h.Push("a")
		h.Push("b")
		h.Push("c")
		line, ok := h.Oldest()
		require.True(t, ok)
		require.EqualValues(t, "a", line)
		line, ok = h.Newest()
		require.True(t, ok)
		require.EqualValues(t, "c", line)
		line, ok = h.At(1)
		require.True(t, ok)
		require.EqualValues(t, "b", line)
		_, ok = h.At(3)
		require.False(t, ok)
		_, ok = h.At(-1)
		require.False(t, ok)
		line, ok = h.Last()
		require.True(t, ok)
		require.EqualValues(t, "c", line)
	})
	t.Run("push resets the cursor", func(t *testing.T) {
		h := newHistoryRing(10)
		h.Push("a")
		h.Push("b")
		_, _ = h.Up()
		_, _ = h.Up()
		h.Push("c")
		line, ok := h.Up()
		require.True(t, ok)
		require.EqualValues(t, "c", line)
	})
	t.Run("clear", func(t *testing.T) {
		h := newHistoryRing(10)
		h.Push("a")
		h.Push("b")
		h.Clear()
		require.EqualValues(t, 0, h.Len())
		require.Empty(t, h.List())
		_, ok := h.Up()
		require.False(t, ok)
		require.True(t, h.Push("a"))
	})
	t.Run("default limit", func(t *testing.T) {
		h := newHistoryRing(0)
		require.EqualValues(t, defaultHistoryLimit, h.max)
	})
}
