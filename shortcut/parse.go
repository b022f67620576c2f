package shortcut

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ChordDef binds one two-character chord to a function name, the
// parsed form of one `key : fn` entry combined with the prefix of its
// group.
type ChordDef struct {
	Chord string
	Name  string
}

// Parse parses the shortcut config grammar
//
//	prefix : { key : fn, key2 : fn2, },
//
// one group per line or spread over several lines, '//' starts a line
// comment, a trailing comma inside and after the braces is allowed.
// Prefix and key are single characters each, the chord is their
// two-character concatenation. Repeating chords and groups left
// unterminated are errors.
func Parse(source string) ([]ChordDef, error) {
	ret := make([]ChordDef, 0)
	seen := make(map[string]bool)
	var buf strings.Builder
	sc := bufio.NewScanner(strings.NewReader(source))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "//")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		buf.WriteString(line)
		buf.WriteString(" ")
		group := strings.TrimSpace(buf.String())
		if !strings.HasSuffix(group, "}") && !strings.HasSuffix(group, "},") {
			continue
		}
		defs, err := parseGroup(strings.TrimSuffix(group, ","))
		if err != nil {
			return nil, err
		}
		for _, d := range defs {
			if seen[d.Chord] {
				return nil, fmt.Errorf("Parse: repeating shortcut '%s'", d.Chord)
			}
			seen[d.Chord] = true
			ret = append(ret, d)
		}
		buf.Reset()
	}
	if rest := strings.TrimSpace(buf.String()); len(rest) > 0 {
		return nil, fmt.Errorf("Parse: unterminated group '%s'", rest)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("Parse: no shortcuts found")
	}
	return ret, nil
}

func parseGroup(group string) ([]ChordDef, error) {
	prefix, body, found := strings.Cut(group, ":")
	if !found {
		return nil, fmt.Errorf("Parse: ':' expected in group '%s'", group)
	}
	prefix = strings.TrimSpace(prefix)
	if len(prefix) != 1 {
		return nil, fmt.Errorf("Parse: prefix must be a single character in group '%s'", group)
	}
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return nil, fmt.Errorf("Parse: '{ ... }' expected in group '%s'", group)
	}
	ret := make([]ChordDef, 0)
	for _, entry := range strings.Split(body[1:len(body)-1], ",") {
		entry = strings.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		key, name, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("Parse: ':' expected in entry '%s'", entry)
		}
		key = strings.TrimSpace(key)
		if len(key) != 1 {
			return nil, fmt.Errorf("Parse: key must be a single character in entry '%s'", entry)
		}
		names := strings.Fields(name)
		if len(names) != 1 {
			return nil, fmt.Errorf("Parse: exactly one function name expected in entry '%s'", entry)
		}
		ret = append(ret, ChordDef{Chord: prefix + key, Name: names[0]})
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("Parse: no entries in group '%s'", group)
	}
	return ret, nil
}

// ParseFromFile reads the shortcut config from a file.
func ParseFromFile(path string) ([]ChordDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFromFile: %v", err)
	}
	return Parse(string(data))
}
