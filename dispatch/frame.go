package dispatch

import "reflect"

// frame is the argument storage of one dispatch call: one fixed array
// per storage class, sized once by the per-class maxima over all
// unique descriptors of the registry, plus the token buffer and the
// invoke scratch. Frames are recycled through the registry pool, never
// escape their call and are zeroed on dispose, so borrowed string
// slices do not retain input lines.
type frame struct {
	toks []string
	args []reflect.Value

	u8s   []uint8
	u16s  []uint16
	u32s  []uint32
	u64s  []uint64
	u128s []Uint128
	i8s   []int8
	i16s  []int16
	i32s  []int32
	i64s  []int64
	i128s []Int128
	uints []uint
	ints  []int
	f32s  []float32
	f64s  []float64
	bools []bool
	chars []rune
	strs  []string
	hexs  [][]byte
	// fixed backing buffers of the hex slots, allocated once
	hexBufs [][]byte
}

func newFrame(counts slotCounts, maxArity, hexMax int) *frame {
	ret := &frame{
		// two spare slots let the tokenizer pick up "one argument too
		// many" for the exact-arity check
		toks:  make([]string, maxArity+2),
		args:  make([]reflect.Value, 0, maxArity),
		u8s:   make([]uint8, counts.u8s),
		u16s:  make([]uint16, counts.u16s),
		u32s:  make([]uint32, counts.u32s),
		u64s:  make([]uint64, counts.u64s),
		u128s: make([]Uint128, counts.u128s),
		i8s:   make([]int8, counts.i8s),
		i16s:  make([]int16, counts.i16s),
		i32s:  make([]int32, counts.i32s),
		i64s:  make([]int64, counts.i64s),
		i128s: make([]Int128, counts.i128s),
		uints: make([]uint, counts.uints),
		ints:  make([]int, counts.ints),
		f32s:  make([]float32, counts.f32s),
		f64s:  make([]float64, counts.f64s),
		bools: make([]bool, counts.bools),
		chars: make([]rune, counts.chars),
		strs:  make([]string, counts.strs),
		hexs:  make([][]byte, counts.hexs),
	}
	ret.hexBufs = make([][]byte, counts.hexs)
	for i := range ret.hexBufs {
		ret.hexBufs[i] = make([]byte, hexMax)
	}
	return ret
}

func zeroSlice[T any](s []T) {
	var z T
	for i := range s {
		s[i] = z
	}
}

// reset zeroes the frame before it goes back to the pool. The hex
// backing buffers stay allocated, only their contents are wiped.
func (f *frame) reset() {
	zeroSlice(f.toks)
	f.args = f.args[:cap(f.args)]
	zeroSlice(f.args)
	f.args = f.args[:0]
	zeroSlice(f.u8s)
	zeroSlice(f.u16s)
	zeroSlice(f.u32s)
	zeroSlice(f.u64s)
	zeroSlice(f.u128s)
	zeroSlice(f.i8s)
	zeroSlice(f.i16s)
	zeroSlice(f.i32s)
	zeroSlice(f.i64s)
	zeroSlice(f.i128s)
	zeroSlice(f.uints)
	zeroSlice(f.ints)
	zeroSlice(f.f32s)
	zeroSlice(f.f64s)
	zeroSlice(f.bools)
	zeroSlice(f.chars)
	zeroSlice(f.strs)
	zeroSlice(f.hexs)
	for _, b := range f.hexBufs {
		zeroSlice(b)
	}
}
