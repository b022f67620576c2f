package editor

import (
	"bufio"
	"unicode"
)

type keyKind int

const (
	keyNone keyKind = iota
	keyChar
	keyEnter
	keyBackspace
	keyTab
	keyShiftTab
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyInsert
	keyDelete
	keyPgUp
	keyPgDn
	keyCtrlU
	keyCtrlK
	keyCtrlD
	keyEsc
)

type keyEvent struct {
	kind keyKind
	r    rune
}

// readKey decodes one key press from the raw byte stream: printable
// UTF-8 runes, the control keys of the editor and ANSI 'ESC [' escape
// sequences. Unknown sequences and unprintable input come back as
// keyNone and are ignored by the caller.
func readKey(in *bufio.Reader) (keyEvent, error) {
	r, _, err := in.ReadRune()
	if err != nil {
		return keyEvent{}, err
	}
	switch r {
	case 0x1b:
		return readEscape(in)
	case '\r', '\n':
		return keyEvent{kind: keyEnter}, nil
	case '\t':
		return keyEvent{kind: keyTab}, nil
	case 0x7f, 0x08:
		return keyEvent{kind: keyBackspace}, nil
	case 0x15:
		return keyEvent{kind: keyCtrlU}, nil
	case 0x0b:
		return keyEvent{kind: keyCtrlK}, nil
	case 0x04:
		return keyEvent{kind: keyCtrlD}, nil
	}
	if unicode.IsPrint(r) {
		return keyEvent{kind: keyChar, r: r}, nil
	}
	return keyEvent{kind: keyNone}, nil
}

// readEscape decodes what follows an ESC byte. A lone ESC, recognized
// when the next byte does not open a bracket sequence or the stream
// ends, is a key of its own: it resets the autocomplete cycle.
func readEscape(in *bufio.Reader) (keyEvent, error) {
	b, err := in.ReadByte()
	if err != nil {
		return keyEvent{kind: keyEsc}, nil
	}
	if b != '[' {
		_ = in.UnreadByte()
		return keyEvent{kind: keyEsc}, nil
	}
	b, err = in.ReadByte()
	if err != nil {
		return keyEvent{kind: keyNone}, nil
	}
	switch b {
	case 'A':
		return keyEvent{kind: keyUp}, nil
	case 'B':
		return keyEvent{kind: keyDown}, nil
	case 'C':
		return keyEvent{kind: keyRight}, nil
	case 'D':
		return keyEvent{kind: keyLeft}, nil
	case 'H':
		return keyEvent{kind: keyHome}, nil
	case 'F':
		return keyEvent{kind: keyEnd}, nil
	case 'Z':
		return keyEvent{kind: keyShiftTab}, nil
	case '1', '2', '3', '4', '5', '6':
		// vt sequences 'ESC [ N ~'
		if tilde, err := in.ReadByte(); err != nil || tilde != '~' {
			return keyEvent{kind: keyNone}, nil
		}
		switch b {
		case '1':
			return keyEvent{kind: keyHome}, nil
		case '2':
			return keyEvent{kind: keyInsert}, nil
		case '3':
			return keyEvent{kind: keyDelete}, nil
		case '4':
			return keyEvent{kind: keyEnd}, nil
		case '5':
			return keyEvent{kind: keyPgUp}, nil
		case '6':
			return keyEvent{kind: keyPgDn}, nil
		}
	}
	return keyEvent{kind: keyNone}, nil
}
