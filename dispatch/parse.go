package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// splitRadix recognizes the explicit base prefixes 0x/0X, 0o/0O and
// 0b/0B, otherwise the literal is decimal. The prefix is recognized
// before any sign, exactly as the reference command sets expect: a
// leading '-' keeps the literal decimal, so "-0x10" does not parse.
// Explicit bases also keep legacy "0377"-style octal and digit
// underscores out of the accepted language.
func splitRadix(s string) (string, int) {
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return s[2:], 16
		case 'o', 'O':
			return s[2:], 8
		case 'b', 'B':
			return s[2:], 2
		}
	}
	return s, 10
}

// integer tokens are trimmed before parsing, all other types take the
// token verbatim
func parseUint(tok string, bitSize int) (uint64, error) {
	s, base := splitRadix(strings.TrimSpace(tok))
	return strconv.ParseUint(s, base, bitSize)
}

func parseInt(tok string, bitSize int) (int64, error) {
	s, base := splitRadix(strings.TrimSpace(tok))
	return strconv.ParseInt(s, base, bitSize)
}

// Accepts 1|true|True|TRUE and 0|false|False|FALSE, nothing else.
func parseBool(tok string) (bool, bool) {
	switch tok {
	case "1", "true", "True", "TRUE":
		return true, true
	case "0", "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// The token must be exactly one Unicode scalar.
func parseChar(tok string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(tok)
	if size == 0 || size != len(tok) {
		return 0, false
	}
	if r == utf8.RuneError && size == 1 {
		return 0, false
	}
	return r, true
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// decodeHex decodes the token into dst without allocating. The token
// must be non-empty, of even length and fit dst.
func decodeHex(dst []byte, tok string) (int, bool) {
	if len(tok) == 0 || len(tok)%2 != 0 || len(tok)/2 > len(dst) {
		return 0, false
	}
	for i := 0; i < len(tok); i += 2 {
		hi, ok1 := hexDigit(tok[i])
		lo, ok2 := hexDigit(tok[i+1])
		if !ok1 || !ok2 {
			return 0, false
		}
		dst[i/2] = hi<<4 | lo
	}
	return len(tok) / 2, true
}

// slotParser parses one token and writes the value into its fixed
// frame slot. Slots are assigned statically when the registry is
// built, one cursor-free routine per parameter.
type slotParser func(f *frame, tok string) error

func makeSlotParser(code byte, slot, pos int) slotParser {
	argErr := func(tok string, sentinel error) error {
		return fmt.Errorf("arg #%d '%s': %w", pos+1, tok, sentinel)
	}
	switch code {
	case 'b':
		return func(f *frame, tok string) error {
			v, err := parseUint(tok, 8)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.u8s[slot] = uint8(v)
			return nil
		}
	case 'w':
		return func(f *frame, tok string) error {
			v, err := parseUint(tok, 16)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.u16s[slot] = uint16(v)
			return nil
		}
	case 'd':
		return func(f *frame, tok string) error {
			v, err := parseUint(tok, 32)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.u32s[slot] = uint32(v)
			return nil
		}
	case 'q':
		return func(f *frame, tok string) error {
			v, err := parseUint(tok, 64)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.u64s[slot] = v
			return nil
		}
	case 'x':
		return func(f *frame, tok string) error {
			s, base := splitRadix(strings.TrimSpace(tok))
			v, err := parseUint128(s, base)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.u128s[slot] = v
			return nil
		}
	case 'B':
		return func(f *frame, tok string) error {
			v, err := parseInt(tok, 8)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.i8s[slot] = int8(v)
			return nil
		}
	case 'W':
		return func(f *frame, tok string) error {
			v, err := parseInt(tok, 16)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.i16s[slot] = int16(v)
			return nil
		}
	case 'D':
		return func(f *frame, tok string) error {
			v, err := parseInt(tok, 32)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.i32s[slot] = int32(v)
			return nil
		}
	case 'Q':
		return func(f *frame, tok string) error {
			v, err := parseInt(tok, 64)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.i64s[slot] = v
			return nil
		}
	case 'X':
		return func(f *frame, tok string) error {
			s, base := splitRadix(strings.TrimSpace(tok))
			v, err := parseInt128(s, base)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.i128s[slot] = v
			return nil
		}
	case 'z':
		return func(f *frame, tok string) error {
			v, err := parseUint(tok, strconv.IntSize)
			if err != nil {
				return argErr(tok, ErrBadUnsigned)
			}
			f.uints[slot] = uint(v)
			return nil
		}
	case 'Z':
		return func(f *frame, tok string) error {
			v, err := parseInt(tok, strconv.IntSize)
			if err != nil {
				return argErr(tok, ErrBadSigned)
			}
			f.ints[slot] = int(v)
			return nil
		}
	case 'f':
		return func(f *frame, tok string) error {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return argErr(tok, ErrBadFloat)
			}
			f.f32s[slot] = float32(v)
			return nil
		}
	case 'F':
		return func(f *frame, tok string) error {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return argErr(tok, ErrBadFloat)
			}
			f.f64s[slot] = v
			return nil
		}
	case 't':
		return func(f *frame, tok string) error {
			v, ok := parseBool(tok)
			if !ok {
				return argErr(tok, ErrBadBool)
			}
			f.bools[slot] = v
			return nil
		}
	case 'c':
		return func(f *frame, tok string) error {
			r, ok := parseChar(tok)
			if !ok {
				return argErr(tok, ErrBadChar)
			}
			f.chars[slot] = r
			return nil
		}
	case 's':
		return func(f *frame, tok string) error {
			f.strs[slot] = tok // borrows the input line
			return nil
		}
	case 'h':
		return func(f *frame, tok string) error {
			n, ok := decodeHex(f.hexBufs[slot], tok)
			if !ok {
				return argErr(tok, ErrBadHexStr)
			}
			f.hexs[slot] = f.hexBufs[slot][:n]
			return nil
		}
	}
	panic(fmt.Sprintf("makeSlotParser: unknown type code '%c'", code))
}

// parseFunc fills the frame from the argument tokens of one dispatch
// call. len(toks) equals the arity of the descriptor, checked by the
// engine beforehand.
type parseFunc func(f *frame, toks []string) error

func buildParser(desc string) parseFunc {
	if desc == VoidDescriptor {
		return func(f *frame, toks []string) error {
			return nil
		}
	}
	slots := make([]slotParser, len(desc))
	var c slotCounts
	for i := 0; i < len(desc); i++ {
		slots[i] = makeSlotParser(desc[i], c.next(desc[i]), i)
	}
	return func(f *frame, toks []string) error {
		for i, p := range slots {
			if err := p(f, toks[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
