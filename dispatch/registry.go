package dispatch

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Def binds a function name to its descriptor and implementation. Fn
// must be a non-variadic func taking exactly the parameter types the
// descriptor declares; at most one return value is allowed and is
// discarded by dispatch.
type Def struct {
	Name       string
	Descriptor string
	Fn         interface{}
}

// FunInfo is one name/descriptor pair of the registered set.
type FunInfo struct {
	Name       string
	Descriptor string
}

type loadFunc func(f *frame) reflect.Value

// entry is the metadata bundle of one registered function.
type entry struct {
	name    string
	descIdx int
	arity   int
	fn      reflect.Value
	load    []loadFunc
}

// Registry is the immutable function table: name-sorted entries,
// exact-match lookup, deduplicated descriptors with one prebuilt
// parser each, and a frame pool sized by the per-class maxima. Built
// once, read-only afterwards, therefore safe for concurrent dispatch.
type Registry struct {
	entries     []*entry
	byName      map[string]*entry
	descriptors []string
	parsers     []parseFunc
	counts      slotCounts
	maxArity    int
	hexMax      int
	framePool   sync.Pool
}

// NewRegistry builds the function table. It fails on the first
// configuration error: empty or repeating name, malformed descriptor,
// implementation signature not matching the descriptor. The optional
// argument overrides DefaultMaxHexStrLen.
func NewRegistry(defs []Def, maxHexStrLen ...int) (*Registry, error) {
	hexMax := DefaultMaxHexStrLen
	if len(maxHexStrLen) > 0 {
		hexMax = maxHexStrLen[0]
	}
	if hexMax < 1 {
		return nil, fmt.Errorf("NewRegistry: max hex string length must be positive")
	}
	ret := &Registry{
		byName: make(map[string]*entry),
		hexMax: hexMax,
	}
	descIdx := make(map[string]int)
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("NewRegistry: empty function name")
		}
		if _, already := ret.byName[d.Name]; already {
			return nil, fmt.Errorf("NewRegistry: repeating function name '%s'", d.Name)
		}
		if err := validateDescriptor(d.Descriptor); err != nil {
			return nil, fmt.Errorf("NewRegistry: function '%s': %v", d.Name, err)
		}
		idx, ok := descIdx[d.Descriptor]
		if !ok {
			idx = len(ret.descriptors)
			descIdx[d.Descriptor] = idx
			ret.descriptors = append(ret.descriptors, d.Descriptor)
			ret.parsers = append(ret.parsers, buildParser(d.Descriptor))
			ret.counts.mergeMax(countSlots(d.Descriptor))
			ret.maxArity = maxInt(ret.maxArity, descriptorArity(d.Descriptor))
		}
		e := &entry{
			name:    d.Name,
			descIdx: idx,
			arity:   descriptorArity(d.Descriptor),
		}
		if err := e.bind(d.Descriptor, d.Fn); err != nil {
			return nil, fmt.Errorf("NewRegistry: function '%s': %v", d.Name, err)
		}
		ret.byName[d.Name] = e
		ret.entries = append(ret.entries, e)
	}
	sort.Slice(ret.entries, func(i, j int) bool {
		return ret.entries[i].name < ret.entries[j].name
	})
	ret.framePool.New = func() interface{} {
		return newFrame(ret.counts, ret.maxArity, ret.hexMax)
	}
	return ret, nil
}

func MustNewRegistry(defs []Def, maxHexStrLen ...int) *Registry {
	ret, err := NewRegistry(defs, maxHexStrLen...)
	if err != nil {
		panic(err)
	}
	return ret
}

func paramType(code byte) reflect.Type {
	switch code {
	case 'b':
		return reflect.TypeOf(uint8(0))
	case 'w':
		return reflect.TypeOf(uint16(0))
	case 'd':
		return reflect.TypeOf(uint32(0))
	case 'q':
		return reflect.TypeOf(uint64(0))
	case 'x':
		return reflect.TypeOf(Uint128{})
	case 'B':
		return reflect.TypeOf(int8(0))
	case 'W':
		return reflect.TypeOf(int16(0))
	case 'D':
		return reflect.TypeOf(int32(0))
	case 'Q':
		return reflect.TypeOf(int64(0))
	case 'X':
		return reflect.TypeOf(Int128{})
	case 'z':
		return reflect.TypeOf(uint(0))
	case 'Z':
		return reflect.TypeOf(int(0))
	case 'f':
		return reflect.TypeOf(float32(0))
	case 'F':
		return reflect.TypeOf(float64(0))
	case 't':
		return reflect.TypeOf(false)
	case 'c':
		return reflect.TypeOf(rune(0))
	case 's':
		return reflect.TypeOf("")
	case 'h':
		return reflect.TypeOf([]byte(nil))
	}
	panic(fmt.Sprintf("paramType: unknown type code '%c'", code))
}

// bind verifies the implementation signature against the descriptor
// and prepares the positional loaders. Checked here, when the registry
// is built, never at dispatch time.
func (e *entry) bind(desc string, fn interface{}) error {
	if fn == nil {
		return fmt.Errorf("implementation is nil")
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return fmt.Errorf("implementation must be a function, got %s", ft.Kind())
	}
	if ft.IsVariadic() {
		return fmt.Errorf("variadic implementation not allowed")
	}
	if ft.NumOut() > 1 {
		return fmt.Errorf("implementation must have at most one return value")
	}
	arity := descriptorArity(desc)
	if ft.NumIn() != arity {
		return fmt.Errorf("signature %s does not match descriptor '%s': %d parameter(s) expected", ft, desc, arity)
	}
	load := make([]loadFunc, arity)
	var c slotCounts
	for i := 0; i < arity; i++ {
		code := desc[i]
		if want := paramType(code); ft.In(i) != want {
			return fmt.Errorf("signature %s does not match descriptor '%s': parameter #%d must be %s", ft, desc, i+1, want)
		}
		load[i] = makeLoader(code, c.next(code))
	}
	e.fn = fv
	e.load = load
	return nil
}

func makeLoader(code byte, slot int) loadFunc {
	switch code {
	case 'b':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.u8s[slot]) }
	case 'w':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.u16s[slot]) }
	case 'd':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.u32s[slot]) }
	case 'q':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.u64s[slot]) }
	case 'x':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.u128s[slot]) }
	case 'B':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.i8s[slot]) }
	case 'W':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.i16s[slot]) }
	case 'D':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.i32s[slot]) }
	case 'Q':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.i64s[slot]) }
	case 'X':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.i128s[slot]) }
	case 'z':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.uints[slot]) }
	case 'Z':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.ints[slot]) }
	case 'f':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.f32s[slot]) }
	case 'F':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.f64s[slot]) }
	case 't':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.bools[slot]) }
	case 'c':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.chars[slot]) }
	case 's':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.strs[slot]) }
	case 'h':
		return func(f *frame) reflect.Value { return reflect.ValueOf(f.hexs[slot]) }
	}
	panic(fmt.Sprintf("makeLoader: unknown type code '%c'", code))
}

// invoke reads the parsed arguments positionally and calls the bound
// function. The return value is discarded: dispatch reports the
// outcome of dispatching, not of the command logic.
func (e *entry) invoke(f *frame) {
	args := f.args[:0]
	for _, ld := range e.load {
		args = append(args, ld(f))
	}
	f.args = args
	e.fn.Call(args)
}

func (r *Registry) NumFunctions() int {
	return len(r.entries)
}

// FunctionNames lists the registered names, sorted.
func (r *Registry) FunctionNames() []string {
	ret := make([]string, len(r.entries))
	for i, e := range r.entries {
		ret[i] = e.name
	}
	return ret
}

// Functions lists name/descriptor pairs in name order. Together with
// DescriptorHelp this is what autocomplete and help screens consume.
func (r *Registry) Functions() []FunInfo {
	ret := make([]FunInfo, len(r.entries))
	for i, e := range r.entries {
		ret[i] = FunInfo{Name: e.name, Descriptor: r.descriptors[e.descIdx]}
	}
	return ret
}
