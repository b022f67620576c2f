package shortcut

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const shortcutSource = `
// habitual one-liners
# : {
    l : listcmds,
    h : helpcmd,  // help screen
    e : echocmd,
},
% : { x : extra },
`

func TestParse(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		defs, err := Parse(shortcutSource)
		require.NoError(t, err)
		require.EqualValues(t, []ChordDef{
			{Chord: "#l", Name: "listcmds"},
			{Chord: "#h", Name: "helpcmd"},
			{Chord: "#e", Name: "echocmd"},
			{Chord: "%x", Name: "extra"},
		}, defs)
	})
	t.Run("single line group", func(t *testing.T) {
		defs, err := Parse(`@ : { a : fn1, b : fn2 }`)
		require.NoError(t, err)
		require.EqualValues(t, 2, len(defs))
	})
	t.Run("repeating chord", func(t *testing.T) {
		_, err := Parse(`# : { l : fn1, l : fn2 },`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "repeating shortcut '#l'")
	})
	t.Run("repeating chord across groups", func(t *testing.T) {
		_, err := Parse("# : { l : fn1 },\n# : { l : fn2 },")
		require.Error(t, err)
	})
	t.Run("unterminated group", func(t *testing.T) {
		_, err := Parse(`# : { l : fn1,`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unterminated")
	})
	t.Run("prefix not single character", func(t *testing.T) {
		_, err := Parse(`## : { l : fn1 },`)
		require.Error(t, err)
	})
	t.Run("key not single character", func(t *testing.T) {
		_, err := Parse(`# : { ll : fn1 },`)
		require.Error(t, err)
	})
	t.Run("missing colon", func(t *testing.T) {
		_, err := Parse(`# { l : fn1 },`)
		require.Error(t, err)
	})
	t.Run("missing braces", func(t *testing.T) {
		_, err := Parse(`# : l : fn1,`)
		require.Error(t, err)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := Parse("")
		require.Error(t, err)
		_, err = Parse("// comments only\n")
		require.Error(t, err)
		_, err = Parse(`# : { },`)
		require.Error(t, err)
	})
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shortcuts.def")
		require.NoError(t, os.WriteFile(path, []byte(shortcutSource), 0644))
		defs, err := ParseFromFile(path)
		require.NoError(t, err)
		require.EqualValues(t, 4, len(defs))
		_, err = ParseFromFile(filepath.Join(t.TempDir(), "nosuch.def"))
		require.Error(t, err)
	})
}

func TestSet(t *testing.T) {
	var listed, helped int
	var echoed, extraParam string
	impl := map[string]Handler{
		"listcmds": func(string) { listed++ },
		"helpcmd":  func(string) { helped++ },
		"echocmd":  func(param string) { echoed = param },
		"extra":    func(param string) { extraParam = param },
	}
	set := MustNew(shortcutSource, impl)

	t.Run("introspect", func(t *testing.T) {
		require.EqualValues(t, 4, set.NumShortcuts())
		require.EqualValues(t, []string{"#e", "#h", "#l", "%x"}, set.Chords())
		require.EqualValues(t, "#e | #h | #l | %x", set.Help())
	})
	t.Run("supported", func(t *testing.T) {
		require.True(t, set.Supported('#'))
		require.True(t, set.Supported('%'))
		require.False(t, set.Supported('@'))
		require.False(t, set.Supported('l'))
	})
	t.Run("dispatch", func(t *testing.T) {
		listed = 0
		require.NoError(t, set.Dispatch("#l"))
		require.NoError(t, set.Dispatch("  #l  "))
		require.EqualValues(t, 2, listed)
		require.NoError(t, set.Dispatch(`#e hello world  `))
		require.EqualValues(t, "hello world", echoed)
		require.NoError(t, set.Dispatch("%x 42"))
		require.EqualValues(t, "42", extraParam)
	})
	t.Run("chord only has empty param", func(t *testing.T) {
		echoed = "sentinel"
		require.NoError(t, set.Dispatch("#e"))
		require.EqualValues(t, "", echoed)
	})
	t.Run("unknown", func(t *testing.T) {
		require.ErrorIs(t, set.Dispatch("#z"), ErrUnknownShortcut)
		require.ErrorIs(t, set.Dispatch("zz whatever"), ErrUnknownShortcut)
		require.ErrorIs(t, set.Dispatch("#"), ErrUnknownShortcut)
		require.ErrorIs(t, set.Dispatch(""), ErrUnknownShortcut)
	})
	t.Run("missing implementation", func(t *testing.T) {
		_, err := New(`# : { l : nosuch },`, impl)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no implementation")
	})
	t.Run("must panics", func(t *testing.T) {
		require.Panics(t, func() {
			MustNew("garbage", impl)
		})
	})
	t.Run("new from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shortcuts.def")
		require.NoError(t, os.WriteFile(path, []byte(shortcutSource), 0644))
		set2, err := NewFromFile(path, impl)
		require.NoError(t, err)
		require.EqualValues(t, set.Chords(), set2.Chords())
	})
}
