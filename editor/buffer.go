package editor

// lineBuffer is the edited line: a rune slice with a cursor between 0
// and len. All editing operations of the editor go through it, the
// terminal rendering reads it.
type lineBuffer struct {
	runes  []rune
	cursor int
}

func (b *lineBuffer) Insert(r rune) {
	b.runes = append(b.runes, 0)
	copy(b.runes[b.cursor+1:], b.runes[b.cursor:])
	b.runes[b.cursor] = r
	b.cursor++
}

// Backspace deletes the rune before the cursor. Reports false at the
// start of the line.
func (b *lineBuffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	copy(b.runes[b.cursor-1:], b.runes[b.cursor:])
	b.runes = b.runes[:len(b.runes)-1]
	b.cursor--
	return true
}

// Delete removes the rune at the cursor.
func (b *lineBuffer) Delete() {
	if b.cursor >= len(b.runes) {
		return
	}
	copy(b.runes[b.cursor:], b.runes[b.cursor+1:])
	b.runes = b.runes[:len(b.runes)-1]
}

func (b *lineBuffer) Left() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *lineBuffer) Right() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

func (b *lineBuffer) Home() {
	b.cursor = 0
}

func (b *lineBuffer) End() {
	b.cursor = len(b.runes)
}

// KillToStart deletes everything before the cursor.
func (b *lineBuffer) KillToStart() {
	b.runes = append(b.runes[:0], b.runes[b.cursor:]...)
	b.cursor = 0
}

// KillToEnd deletes everything from the cursor on.
func (b *lineBuffer) KillToEnd() {
	b.runes = b.runes[:b.cursor]
}

func (b *lineBuffer) Clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

// Overwrite replaces the whole line and puts the cursor at the end.
func (b *lineBuffer) Overwrite(s string) {
	b.runes = append(b.runes[:0], []rune(s)...)
	b.cursor = len(b.runes)
}

func (b *lineBuffer) String() string {
	return string(b.runes)
}

func (b *lineBuffer) Cursor() int {
	return b.cursor
}

func (b *lineBuffer) Len() int {
	return len(b.runes)
}

func (b *lineBuffer) Empty() bool {
	return len(b.runes) == 0
}
