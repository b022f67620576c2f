package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnsigned(t *testing.T) {
	t.Run("radix forms", func(t *testing.T) {
		for _, tok := range []string{"255", "0xFF", "0Xff", "0o377", "0O377", "0b11111111", "0B11111111"} {
			v, err := parseUint(tok, 8)
			require.NoError(t, err, tok)
			require.EqualValues(t, 255, v, tok)
		}
	})
	t.Run("surrounding whitespace", func(t *testing.T) {
		v, err := parseUint(" 42\t", 8)
		require.NoError(t, err)
		require.EqualValues(t, 42, v)
	})
	t.Run("range", func(t *testing.T) {
		_, err := parseUint("256", 8)
		require.Error(t, err)
		_, err = parseUint("65535", 16)
		require.NoError(t, err)
		_, err = parseUint("65536", 16)
		require.Error(t, err)
		_, err = parseUint("4294967296", 32)
		require.Error(t, err)
		_, err = parseUint("18446744073709551615", 64)
		require.NoError(t, err)
		_, err = parseUint("18446744073709551616", 64)
		require.Error(t, err)
	})
	t.Run("rejects", func(t *testing.T) {
		for _, tok := range []string{"", "-1", "+1", "abc", "0x", "0xG1", "1_000", "0377z", "12 34"} {
			_, err := parseUint(tok, 64)
			require.Error(t, err, tok)
		}
	})
	t.Run("sign before prefix stays decimal", func(t *testing.T) {
		// the radix prefix is only recognized at the very start, so a
		// signed hex literal like "-0x10" never parses
		_, err := parseInt("-0x10", 64)
		require.Error(t, err)
		v, err := parseInt("0x-10", 64)
		require.NoError(t, err)
		require.EqualValues(t, -16, v)
	})
	t.Run("legacy octal is decimal", func(t *testing.T) {
		v, err := parseUint("0377", 64)
		require.NoError(t, err)
		require.EqualValues(t, 377, v)
	})
}

func TestParseSigned(t *testing.T) {
	t.Run("signs", func(t *testing.T) {
		v, err := parseInt("-128", 8)
		require.NoError(t, err)
		require.EqualValues(t, -128, v)
		v, err = parseInt("+127", 8)
		require.NoError(t, err)
		require.EqualValues(t, 127, v)
	})
	t.Run("range", func(t *testing.T) {
		_, err := parseInt("128", 8)
		require.Error(t, err)
		_, err = parseInt("-129", 8)
		require.Error(t, err)
		_, err = parseInt("-9223372036854775808", 64)
		require.NoError(t, err)
		_, err = parseInt("-9223372036854775809", 64)
		require.Error(t, err)
	})
}

func TestParseBool(t *testing.T) {
	for _, tok := range []string{"1", "true", "True", "TRUE"} {
		v, ok := parseBool(tok)
		require.True(t, ok, tok)
		require.True(t, v, tok)
	}
	for _, tok := range []string{"0", "false", "False", "FALSE"} {
		v, ok := parseBool(tok)
		require.True(t, ok, tok)
		require.False(t, v, tok)
	}
	for _, tok := range []string{"", "yes", "no", "TrUe", "t", "2", " true"} {
		_, ok := parseBool(tok)
		require.False(t, ok, tok)
	}
}

func TestParseChar(t *testing.T) {
	r, ok := parseChar("A")
	require.True(t, ok)
	require.EqualValues(t, 'A', r)
	r, ok = parseChar("ж")
	require.True(t, ok)
	require.EqualValues(t, 'ж', r)
	r, ok = parseChar("🚀")
	require.True(t, ok)
	require.EqualValues(t, '🚀', r)
	// a space never arrives through the tokenizer, still a legal
	// single character
	r, ok = parseChar(" ")
	require.True(t, ok)
	require.EqualValues(t, ' ', r)
	for _, tok := range []string{"", "ab", "жж", "\xff"} {
		_, ok = parseChar(tok)
		require.False(t, ok, "%q", tok)
	}
}

func TestDecodeHex(t *testing.T) {
	dst := make([]byte, 4)
	t.Run("ok", func(t *testing.T) {
		n, ok := decodeHex(dst, "AABBCC")
		require.True(t, ok)
		require.EqualValues(t, []byte{0xAA, 0xBB, 0xCC}, dst[:n])
		n, ok = decodeHex(dst, "00ff10Fa")
		require.True(t, ok)
		require.EqualValues(t, []byte{0x00, 0xFF, 0x10, 0xFA}, dst[:n])
	})
	t.Run("rejects", func(t *testing.T) {
		for _, tok := range []string{"", "A", "ABC", "GG", "0x12", " AB"} {
			_, ok := decodeHex(dst, tok)
			require.False(t, ok, tok)
		}
	})
	t.Run("too long for the slot", func(t *testing.T) {
		_, ok := decodeHex(dst, "AABBCCDDEE")
		require.False(t, ok)
	})
}
