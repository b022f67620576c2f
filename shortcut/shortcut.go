/*
Package shortcut implements the chord dispatcher: a line whose first
two characters form a registered chord is routed to a handler which
receives the rest of the line as its parameter. Chords complement the
function registry for habitual one-liners where even a short function
name is too much typing.
*/
package shortcut

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownShortcut = errors.New("unknown shortcut")

// Handler receives everything after the chord, trimmed.
type Handler func(param string)

// Set is the immutable chord table. Built once, read-only afterwards.
type Set struct {
	byChord  map[string]Handler
	chords   []string
	prefixes map[byte]bool
}

// New parses the config and binds every chord to its handler from
// impl. A name in the config without a handler is a construction
// error.
func New(source string, impl map[string]Handler) (*Set, error) {
	defs, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return newFromDefs(defs, impl)
}

func MustNew(source string, impl map[string]Handler) *Set {
	ret, err := New(source, impl)
	if err != nil {
		panic(err)
	}
	return ret
}

// NewFromFile reads the shortcut config from a file.
func NewFromFile(path string, impl map[string]Handler) (*Set, error) {
	defs, err := ParseFromFile(path)
	if err != nil {
		return nil, err
	}
	return newFromDefs(defs, impl)
}

func newFromDefs(defs []ChordDef, impl map[string]Handler) (*Set, error) {
	ret := &Set{
		byChord:  make(map[string]Handler),
		chords:   make([]string, 0, len(defs)),
		prefixes: make(map[byte]bool),
	}
	for _, d := range defs {
		h, ok := impl[d.Name]
		if !ok || h == nil {
			return nil, fmt.Errorf("shortcut '%s': no implementation for function '%s'", d.Chord, d.Name)
		}
		ret.byChord[d.Chord] = h
		ret.chords = append(ret.chords, d.Chord)
		ret.prefixes[d.Chord[0]] = true
	}
	sort.Strings(ret.chords)
	return ret, nil
}

// Dispatch resolves the first two characters of the trimmed line as a
// chord and hands the trimmed remainder to the handler.
func (s *Set) Dispatch(line string) error {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 {
		return fmt.Errorf("'%s': %w", trimmed, ErrUnknownShortcut)
	}
	chord := trimmed[:2]
	h, found := s.byChord[chord]
	if !found {
		return fmt.Errorf("'%s': %w", chord, ErrUnknownShortcut)
	}
	h(strings.TrimSpace(trimmed[2:]))
	return nil
}

// Supported tells if any chord of the set starts with the character.
// The shell uses it to route lines between chords and the function
// registry.
func (s *Set) Supported(prefix byte) bool {
	return s.prefixes[prefix]
}

// Chords lists the chords, sorted. Autocomplete candidates.
func (s *Set) Chords() []string {
	ret := make([]string, len(s.chords))
	copy(ret, s.chords)
	return ret
}

// Help returns the chord list the way the help screen shows it.
func (s *Set) Help() string {
	return strings.Join(s.chords, " | ")
}

func (s *Set) NumShortcuts() int {
	return len(s.chords)
}
