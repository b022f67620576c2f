package editor

import (
	"strings"

	"github.com/gammazero/deque"
)

// historyRing is the bounded in-memory command history: pushed lines
// are trimmed, empty lines and consecutive duplicates are dropped, the
// oldest entry is evicted beyond capacity. The navigation cursor moves
// over the entries oldest to newest; position Len() is the fresh empty
// line the user is typing.
type historyRing struct {
	d   *deque.Deque[string]
	max int
	pos int
}

const defaultHistoryLimit = 100

func newHistoryRing(max int) *historyRing {
	if max < 1 {
		max = defaultHistoryLimit
	}
	return &historyRing{
		d:   new(deque.Deque[string]),
		max: max,
	}
}

// Push appends a line and resets the navigation cursor to the fresh
// line. Reports whether the line was actually stored.
func (h *historyRing) Push(line string) bool {
	trimmed := strings.TrimSpace(line)
	h.pos = h.d.Len()
	if len(trimmed) == 0 {
		return false
	}
	if h.d.Len() > 0 && h.d.Back() == trimmed {
		return false
	}
	if h.d.Len() >= h.max {
		h.d.PopFront()
	}
	h.d.PushBack(trimmed)
	h.pos = h.d.Len()
	return true
}

// Up moves to the previous (older) entry, clamping at the oldest.
func (h *historyRing) Up() (string, bool) {
	if h.d.Len() == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.d.At(h.pos), true
}

// Down moves to the next (newer) entry; past the newest it lands on
// the fresh empty line.
func (h *historyRing) Down() (string, bool) {
	if h.d.Len() == 0 || h.pos >= h.d.Len() {
		return "", false
	}
	h.pos++
	if h.pos == h.d.Len() {
		return "", true
	}
	return h.d.At(h.pos), true
}

// Oldest jumps to the first entry.
func (h *historyRing) Oldest() (string, bool) {
	if h.d.Len() == 0 {
		return "", false
	}
	h.pos = 0
	return h.d.At(0), true
}

// Newest jumps to the last entry.
func (h *historyRing) Newest() (string, bool) {
	if h.d.Len() == 0 {
		return "", false
	}
	h.pos = h.d.Len() - 1
	return h.d.At(h.pos), true
}

// At recalls the entry at index i, 0 being the oldest.
func (h *historyRing) At(i int) (string, bool) {
	if i < 0 || i >= h.d.Len() {
		return "", false
	}
	return h.d.At(i), true
}

// Last returns the newest entry without moving the cursor.
func (h *historyRing) Last() (string, bool) {
	if h.d.Len() == 0 {
		return "", false
	}
	return h.d.Back(), true
}

// List returns all entries, oldest first.
func (h *historyRing) List() []string {
	ret := make([]string, h.d.Len())
	for i := 0; i < h.d.Len(); i++ {
		ret[i] = h.d.At(i)
	}
	return ret
}

func (h *historyRing) Len() int {
	return h.d.Len()
}

func (h *historyRing) Clear() {
	h.d.Clear()
	h.pos = 0
}

// ResetCursor puts the navigation back on the fresh line.
func (h *historyRing) ResetCursor() {
	h.pos = h.d.Len()
}
