package dispatch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// GroupParsed is one group of the command set source: a descriptor and
// the function names sharing it.
type GroupParsed struct {
	Descriptor string
	Names      []string
}

func splitLinesStripComments(s string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "//")
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

// ParseDefs parses the inline command set grammar
//
//	descriptor1 : fn1 fn2, descriptor2 : fn3, ...
//
// Groups are separated by ',', names by whitespace, '//' starts a line
// comment, a trailing comma is allowed. Only the syntax is checked
// here; descriptors and name uniqueness are validated when the
// registry is built.
func ParseDefs(source string) ([]GroupParsed, error) {
	merged := strings.Join(splitLinesStripComments(source), " ")
	ret := make([]GroupParsed, 0)
	for _, group := range strings.Split(merged, ",") {
		if len(strings.TrimSpace(group)) == 0 {
			continue
		}
		descStr, namesStr, found := strings.Cut(group, ":")
		if !found {
			return nil, fmt.Errorf("ParseDefs: ':' expected in group '%s'", strings.TrimSpace(group))
		}
		descFields := strings.Fields(descStr)
		if len(descFields) != 1 {
			return nil, fmt.Errorf("ParseDefs: exactly one descriptor expected in group '%s'", strings.TrimSpace(group))
		}
		names := strings.Fields(namesStr)
		if len(names) == 0 {
			return nil, fmt.Errorf("ParseDefs: no function names in group '%s'", strings.TrimSpace(group))
		}
		ret = append(ret, GroupParsed{Descriptor: descFields[0], Names: names})
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("ParseDefs: no groups found")
	}
	return ret, nil
}

// ParseDefsFromFile reads the command set source from a file.
func ParseDefsFromFile(path string) ([]GroupParsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ParseDefsFromFile: %v", err)
	}
	return ParseDefs(string(data))
}

func registryFromGroups(groups []GroupParsed, impl map[string]interface{}, maxHexStrLen ...int) (*Registry, error) {
	defs := make([]Def, 0, len(impl))
	for _, g := range groups {
		for _, name := range g.Names {
			fn, ok := impl[name]
			if !ok {
				return nil, fmt.Errorf("no implementation for function '%s'", name)
			}
			defs = append(defs, Def{Name: name, Descriptor: g.Descriptor, Fn: fn})
		}
	}
	return NewRegistry(defs, maxHexStrLen...)
}

// RegistryFromSource parses the command set source and binds every
// name to its implementation from impl.
func RegistryFromSource(source string, impl map[string]interface{}, maxHexStrLen ...int) (*Registry, error) {
	groups, err := ParseDefs(source)
	if err != nil {
		return nil, err
	}
	return registryFromGroups(groups, impl, maxHexStrLen...)
}

func MustRegistryFromSource(source string, impl map[string]interface{}, maxHexStrLen ...int) *Registry {
	ret, err := RegistryFromSource(source, impl, maxHexStrLen...)
	if err != nil {
		panic(err)
	}
	return ret
}

// RegistryFromFile reads the command set source from a file.
func RegistryFromFile(path string, impl map[string]interface{}, maxHexStrLen ...int) (*Registry, error) {
	groups, err := ParseDefsFromFile(path)
	if err != nil {
		return nil, err
	}
	return registryFromGroups(groups, impl, maxHexStrLen...)
}
