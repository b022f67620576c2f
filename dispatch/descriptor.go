package dispatch

import "fmt"

// Each character of a descriptor stands for one positional parameter.
// Lowercase letters are unsigned integers, uppercase their signed
// counterparts. The single-character descriptor "v" declares a function
// without parameters.
//
//	b-uint8  w-uint16  d-uint32  q-uint64  x-uint128  z-uint
//	B-int8   W-int16   D-int32   Q-int64   X-int128   Z-int
//	f-float32  F-float64  t-bool  c-char  s-string  h-hexstr  v-void

const (
	// VoidDescriptor declares arity 0. It is only valid alone.
	VoidDescriptor = "v"

	// DefaultMaxHexStrLen bounds the decoded length of an 'h' argument
	// unless the registry is built with an explicit limit.
	DefaultMaxHexStrLen = 64
)

const descriptorHelp = `type codes:  b-uint8   w-uint16   d-uint32   q-uint64   x-uint128   z-uint
             B-int8    W-int16    D-int32    Q-int64    X-int128    Z-int
             f-float32   F-float64   t-bool   c-char   s-string   h-hexstr   v-void`

// DescriptorHelp returns the fixed legend of the type codes, one help
// screen line per row.
func DescriptorHelp() string {
	return descriptorHelp
}

func isTypeCode(c byte) bool {
	switch c {
	case 'b', 'w', 'd', 'q', 'x', 'B', 'W', 'D', 'Q', 'X', 'z', 'Z', 'f', 'F', 't', 'c', 's', 'h':
		return true
	}
	return false
}

func validateDescriptor(desc string) error {
	if len(desc) == 0 {
		return fmt.Errorf("empty descriptor")
	}
	if desc == VoidDescriptor {
		return nil
	}
	for i := 0; i < len(desc); i++ {
		if desc[i] == 'v' {
			return fmt.Errorf("descriptor '%s': 'v' is only valid as the single character", desc)
		}
		if !isTypeCode(desc[i]) {
			return fmt.Errorf("descriptor '%s': unknown type code '%c' at position %d", desc, desc[i], i)
		}
	}
	return nil
}

func descriptorArity(desc string) int {
	if desc == VoidDescriptor {
		return 0
	}
	return len(desc)
}

// slotCounts tallies how many parameters of each storage class a
// descriptor declares. The counts of the registry are the per-class
// maxima over all unique descriptors and size the frame arrays.
type slotCounts struct {
	u8s, u16s, u32s, u64s, u128s int
	i8s, i16s, i32s, i64s, i128s int
	uints, ints                  int
	f32s, f64s                   int
	bools, chars, strs, hexs     int
}

// next returns the storage slot for one more parameter of the given
// type code and advances the tally.
func (c *slotCounts) next(code byte) int {
	var p *int
	switch code {
	case 'b':
		p = &c.u8s
	case 'w':
		p = &c.u16s
	case 'd':
		p = &c.u32s
	case 'q':
		p = &c.u64s
	case 'x':
		p = &c.u128s
	case 'B':
		p = &c.i8s
	case 'W':
		p = &c.i16s
	case 'D':
		p = &c.i32s
	case 'Q':
		p = &c.i64s
	case 'X':
		p = &c.i128s
	case 'z':
		p = &c.uints
	case 'Z':
		p = &c.ints
	case 'f':
		p = &c.f32s
	case 'F':
		p = &c.f64s
	case 't':
		p = &c.bools
	case 'c':
		p = &c.chars
	case 's':
		p = &c.strs
	case 'h':
		p = &c.hexs
	default:
		panic(fmt.Sprintf("slotCounts.next: unknown type code '%c'", code))
	}
	ret := *p
	*p = ret + 1
	return ret
}

func countSlots(desc string) (ret slotCounts) {
	if desc == VoidDescriptor {
		return
	}
	for i := 0; i < len(desc); i++ {
		ret.next(desc[i])
	}
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mergeMax raises each tally to the maximum of the two. Capacities are
// per-type maxima over any single descriptor, not sums.
func (c *slotCounts) mergeMax(o slotCounts) {
	c.u8s = maxInt(c.u8s, o.u8s)
	c.u16s = maxInt(c.u16s, o.u16s)
	c.u32s = maxInt(c.u32s, o.u32s)
	c.u64s = maxInt(c.u64s, o.u64s)
	c.u128s = maxInt(c.u128s, o.u128s)
	c.i8s = maxInt(c.i8s, o.i8s)
	c.i16s = maxInt(c.i16s, o.i16s)
	c.i32s = maxInt(c.i32s, o.i32s)
	c.i64s = maxInt(c.i64s, o.i64s)
	c.i128s = maxInt(c.i128s, o.i128s)
	c.uints = maxInt(c.uints, o.uints)
	c.ints = maxInt(c.ints, o.ints)
	c.f32s = maxInt(c.f32s, o.f32s)
	c.f64s = maxInt(c.f64s, o.f64s)
	c.bools = maxInt(c.bools, o.bools)
	c.chars = maxInt(c.chars, o.chars)
	c.strs = maxInt(c.strs, o.strs)
	c.hexs = maxInt(c.hexs, o.hexs)
}
