package dispatch

import (
	"fmt"
	"math/bits"
	"strings"
)

// Uint128 is a 128-bit unsigned integer as two 64-bit limbs, the value
// of an 'x' parameter. Go has no native 128-bit integers, so parsing
// accumulates the limbs explicitly.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is the two's complement counterpart of Uint128, the value of
// an 'X' parameter.
type Int128 struct {
	Hi, Lo uint64
}

func Uint128From(v uint64) Uint128 {
	return Uint128{Lo: v}
}

func Int128From(v int64) Int128 {
	if v >= 0 {
		return Int128{Lo: uint64(v)}
	}
	return Int128{Hi: ^uint64(0), Lo: uint64(v)}
}

func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// mulAdd returns u*m + a and reports overflow beyond 128 bits.
func (u Uint128) mulAdd(m, a uint64) (Uint128, bool) {
	carryLo, lo := bits.Mul64(u.Lo, m)
	overflow, hi := bits.Mul64(u.Hi, m)
	if overflow != 0 {
		return u, false
	}
	hi, c := bits.Add64(hi, carryLo, 0)
	if c != 0 {
		return u, false
	}
	lo, c = bits.Add64(lo, a, 0)
	hi, c = bits.Add64(hi, 0, c)
	if c != 0 {
		return u, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// quoRem64 divides u by a small divisor. 0 < y is required.
func (u Uint128) quoRem64(y uint64) (Uint128, uint64) {
	qHi := u.Hi / y
	rem := u.Hi % y
	qLo, rem := bits.Div64(rem, u.Lo, y)
	return Uint128{Hi: qHi, Lo: qLo}, rem
}

func (u Uint128) String() string {
	if u.IsZero() {
		return "0"
	}
	var rem uint64
	buf := make([]byte, 0, 40)
	for !u.IsZero() {
		u, rem = u.quoRem64(10)
		buf = append(buf, byte('0'+rem))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func (i Int128) negative() bool {
	return i.Hi>>63 != 0
}

func (u Uint128) negate() Uint128 {
	hi := ^u.Hi
	lo := ^u.Lo + 1
	if u.Lo == 0 {
		hi++
	}
	return Uint128{Hi: hi, Lo: lo}
}

func (i Int128) String() string {
	if !i.negative() {
		return Uint128(i).String()
	}
	return "-" + Uint128(i).negate().String()
}

func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

func parseDigits128(s string, base int) (Uint128, error) {
	if len(s) == 0 {
		return Uint128{}, fmt.Errorf("no digits")
	}
	var ret Uint128
	var ok bool
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i])
		if d < 0 || d >= base {
			return Uint128{}, fmt.Errorf("invalid digit '%c'", s[i])
		}
		if ret, ok = ret.mulAdd(uint64(base), uint64(d)); !ok {
			return Uint128{}, fmt.Errorf("value out of 128 bit range")
		}
	}
	return ret, nil
}

// parseUint128 accepts digits only. No sign, not even '+', the same
// as strconv.ParseUint for the narrower widths.
func parseUint128(s string, base int) (Uint128, error) {
	return parseDigits128(s, base)
}

func parseInt128(s string, base int) (Int128, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	}
	mag, err := parseDigits128(s, base)
	if err != nil {
		return Int128{}, err
	}
	const signBit = uint64(1) << 63
	if neg {
		// magnitude up to 2^127 inclusive
		if mag.Hi > signBit || (mag.Hi == signBit && mag.Lo != 0) {
			return Int128{}, fmt.Errorf("value out of 128 bit range")
		}
		return Int128(mag.negate()), nil
	}
	if mag.Hi >= signBit {
		return Int128{}, fmt.Errorf("value out of 128 bit range")
	}
	return Int128(mag), nil
}
