/*
Package editor implements the interactive line editor of the shell:
raw-mode key handling, cursor editing, first-token autocomplete over
the registered names and a bounded navigable history. It produces
complete text lines and knows nothing about dispatching: every line
returned by ReadLine goes back to the caller whole.
*/
package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/atomic"
	"golang.org/x/term"
)

// Config of the editor. Zero values fall back to stdin/stdout, an
// empty prompt and the default history limit.
type Config struct {
	In           io.Reader
	Out          io.Writer
	Prompt       string
	HistoryLimit int
	Candidates   []string
}

// Editor reads keys from its input and maintains the edited line, the
// autocomplete state and the history ring. Not safe for concurrent
// use: one editor per terminal.
type Editor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
	buf    lineBuffer
	hist   *historyRing
	comp   *completer

	fd       int
	rawSaved *term.State
	raw      atomic.Bool
}

func New(cfg Config) *Editor {
	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Editor{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: cfg.Prompt,
		hist:   newHistoryRing(cfg.HistoryLimit),
		comp:   newCompleter(cfg.Candidates),
		fd:     fd,
	}
}

// EnterRawMode switches the input terminal into raw mode. A no-op when
// the input is not a terminal, so scripted sessions run unchanged.
func (ed *Editor) EnterRawMode() error {
	if ed.fd < 0 || !term.IsTerminal(ed.fd) {
		return nil
	}
	if !ed.raw.CompareAndSwap(false, true) {
		return nil
	}
	st, err := term.MakeRaw(ed.fd)
	if err != nil {
		ed.raw.Store(false)
		return err
	}
	ed.rawSaved = st
	return nil
}

// ExitRawMode restores the terminal. Safe to call when raw mode was
// never engaged.
func (ed *Editor) ExitRawMode() error {
	if !ed.raw.CompareAndSwap(true, false) {
		return nil
	}
	return term.Restore(ed.fd, ed.rawSaved)
}

// ReadLine runs the interactive editing of one line and returns it
// without the terminating newline. Ctrl-D on an empty line reports
// io.EOF: the session is over. The line is not recorded in the
// history, accepted lines are pushed back by the caller.
func (ed *Editor) ReadLine() (string, error) {
	ed.buf.Clear()
	ed.comp.reset()
	ed.hist.ResetCursor()
	ed.render()
	for {
		ev, err := readKey(ed.in)
		if err != nil {
			return "", err
		}
		switch ev.kind {
		case keyEnter:
			_, _ = io.WriteString(ed.out, "\r\n")
			return ed.buf.String(), nil
		case keyChar:
			ed.comp.reset()
			ed.buf.Insert(ev.r)
		case keyBackspace:
			ed.comp.reset()
			if !ed.buf.Backspace() {
				ed.bell()
			}
		case keyDelete:
			ed.comp.reset()
			ed.buf.Delete()
		case keyTab:
			ed.completeStep(false)
		case keyShiftTab:
			ed.completeStep(true)
		case keyCtrlU:
			ed.comp.reset()
			ed.buf.KillToStart()
		case keyCtrlK:
			ed.comp.reset()
			ed.buf.KillToEnd()
		case keyCtrlD:
			if ed.buf.Empty() {
				_, _ = io.WriteString(ed.out, "\r\n")
				return "", io.EOF
			}
			ed.comp.reset()
			ed.buf.Clear()
		case keyLeft:
			ed.buf.Left()
		case keyRight:
			ed.buf.Right()
		case keyHome:
			ed.buf.Home()
		case keyEnd:
			ed.buf.End()
		case keyUp:
			if line, ok := ed.hist.Up(); ok {
				ed.comp.reset()
				ed.buf.Overwrite(line)
			}
		case keyDown:
			if line, ok := ed.hist.Down(); ok {
				ed.comp.reset()
				ed.buf.Overwrite(line)
			}
		case keyPgUp:
			if line, ok := ed.hist.Oldest(); ok {
				ed.comp.reset()
				ed.buf.Overwrite(line)
			}
		case keyPgDn:
			if line, ok := ed.hist.Newest(); ok {
				ed.comp.reset()
				ed.buf.Overwrite(line)
			}
		case keyEsc:
			ed.comp.reset()
		}
		ed.render()
	}
}

// completeStep applies one Tab press. Completion works on the first
// token only: once the line contains a separator the key does nothing,
// unless a cycle is already running.
func (ed *Editor) completeStep(reverse bool) {
	word := ed.buf.String()
	if !ed.comp.isCycling() && (len(word) == 0 || strings.ContainsAny(word, " \t")) {
		return
	}
	repl, final := ed.comp.next(word, reverse)
	switch {
	case final:
		ed.buf.Overwrite(repl + " ")
	case repl != word:
		ed.buf.Overwrite(repl)
	}
}

// render redraws the prompt and the edited line in place and puts the
// terminal cursor at the edit position, by display width so wide runes
// line up.
func (ed *Editor) render() {
	var sb strings.Builder
	sb.WriteString("\r\x1b[2K")
	sb.WriteString(ed.prompt)
	sb.WriteString(ed.buf.String())
	sb.WriteString("\r")
	width := runewidth.StringWidth(ed.prompt) + runewidth.StringWidth(string(ed.buf.runes[:ed.buf.cursor]))
	if width > 0 {
		fmt.Fprintf(&sb, "\x1b[%dC", width)
	}
	_, _ = io.WriteString(ed.out, sb.String())
}

func (ed *Editor) bell() {
	_, _ = io.WriteString(ed.out, "\a")
}

// AddHistory records an accepted line, with the usual trimming and
// duplicate dropping.
func (ed *Editor) AddHistory(line string) bool {
	return ed.hist.Push(line)
}

// History lists the ring, oldest first.
func (ed *Editor) History() []string {
	return ed.hist.List()
}

// HistoryAt recalls the entry at index i, 0 being the oldest.
func (ed *Editor) HistoryAt(i int) (string, bool) {
	return ed.hist.At(i)
}

// LastCommand returns the newest history entry.
func (ed *Editor) LastCommand() (string, bool) {
	return ed.hist.Last()
}

func (ed *Editor) HistoryLen() int {
	return ed.hist.Len()
}

func (ed *Editor) ClearHistory() {
	ed.hist.Clear()
}
