package editor

import (
	"sort"
	"strings"
)

// completer implements first-token completion: a single match
// completes the word outright, several matches extend it to their
// longest common prefix and repeated Tab presses cycle through them,
// forward or backward. Any edit or Esc resets the cycle.
type completer struct {
	candidates []string
	matches    []string
	idx        int
	cycling    bool
}

func newCompleter(candidates []string) *completer {
	return &completer{candidates: sortedCopy(candidates), idx: -1}
}

func (c *completer) reset() {
	c.matches = nil
	c.idx = -1
	c.cycling = false
}

func (c *completer) isCycling() bool {
	return c.cycling
}

// next returns the replacement for the word and whether it is final, a
// concrete candidate the editor renders with a trailing space.
func (c *completer) next(word string, reverse bool) (string, bool) {
	if c.cycling {
		return c.cycleStep(reverse), true
	}
	if len(word) == 0 {
		return word, false
	}
	c.matches = c.matches[:0]
	for _, cand := range c.candidates {
		if strings.HasPrefix(cand, word) {
			c.matches = append(c.matches, cand)
		}
	}
	switch len(c.matches) {
	case 0:
		return word, false
	case 1:
		ret := c.matches[0]
		c.reset()
		return ret, true
	}
	c.cycling = true
	c.idx = -1
	if lcp := commonPrefix(c.matches); lcp != word {
		return lcp, false
	}
	// the prefix cannot grow, go straight to cycling
	return c.cycleStep(reverse), true
}

func (c *completer) cycleStep(reverse bool) string {
	n := len(c.matches)
	switch {
	case c.idx < 0 && reverse:
		c.idx = n - 1
	case c.idx < 0:
		c.idx = 0
	case reverse:
		c.idx = (c.idx - 1 + n) % n
	default:
		c.idx = (c.idx + 1) % n
	}
	return c.matches[c.idx]
}

func commonPrefix(ss []string) string {
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// sortedCopy keeps the caller's slice intact.
func sortedCopy(ss []string) []string {
	ret := make([]string, len(ss))
	copy(ret, ss)
	sort.Strings(ret)
	return ret
}
