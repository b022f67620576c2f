/*
Package shell glues the pieces into a runnable interactive shell: the
function registry, the shortcut set, the line editor and the persistent
history store. Every accepted line is routed to the '#' meta handler,
the shortcut set or the registry, the outcome is reported on the spot
and the line lands in both histories.
*/
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lunfardo314/easysh"
	"github.com/lunfardo314/easysh/dispatch"
	"github.com/lunfardo314/easysh/editor"
	"github.com/lunfardo314/easysh/shortcut"
	"github.com/lunfardo314/easysh/store"
	"github.com/mattn/go-isatty"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Config of the shell. Registry is the only mandatory field: without
// shortcuts the chord routing is skipped, without a history file the
// history lives in memory only.
type Config struct {
	Registry     *dispatch.Registry
	Shortcuts    *shortcut.Set
	Prompt       string
	HistoryLimit int
	HistoryFile  string
	Debug        bool
	In           io.Reader
	Out          io.Writer
	Log          *zap.SugaredLogger
}

const defaultPrompt = "> "

// Shell is the interactive runner. One instance drives one terminal.
type Shell struct {
	reg       *dispatch.Registry
	shortcuts *shortcut.Set
	ed        *editor.Editor
	db        *store.Store
	out       io.Writer
	log       *zap.SugaredLogger
	ok        *color.Color
	fail      *color.Color
	running   atomic.Bool
}

func New(cfg Config) (*Shell, error) {
	if cfg.Registry == nil {
		return nil, errors.New("shell: no function registry")
	}
	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	log := cfg.Log
	if log == nil {
		log = newDefaultLogger(cfg.Debug)
	}
	candidates := cfg.Registry.FunctionNames()
	if cfg.Shortcuts != nil {
		candidates = append(candidates, cfg.Shortcuts.Chords()...)
	}
	sh := &Shell{
		reg:       cfg.Registry,
		shortcuts: cfg.Shortcuts,
		out:       out,
		log:       log,
		ok:        color.New(color.FgGreen),
		fail:      color.New(color.FgRed),
		ed: editor.New(editor.Config{
			In:           in,
			Out:          out,
			Prompt:       prompt,
			HistoryLimit: cfg.HistoryLimit,
			Candidates:   candidates,
		}),
	}
	if !writerIsTerminal(out) {
		sh.ok.DisableColor()
		sh.fail.DisableColor()
	}
	if cfg.HistoryFile != "" {
		db, err := store.Open(cfg.HistoryFile)
		if err != nil {
			return nil, err
		}
		sh.db = db
		seed, err := db.All(cfg.HistoryLimit)
		if err != nil {
			sh.log.Warnf("history store: %v", err)
		}
		for _, line := range seed {
			sh.ed.AddHistory(line)
		}
	}
	return sh, nil
}

func newDefaultLogger(debug bool) *zap.SugaredLogger {
	if !debug {
		return zap.NewNop().Sugar()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Close releases the persistent history store, if one was opened.
func (sh *Shell) Close() error {
	if sh.db == nil {
		return nil
	}
	return sh.db.Close()
}

func (sh *Shell) IsRunning() bool {
	return sh.running.Load()
}

// Run drives the interactive session until '#q', Ctrl-D on an empty
// line or a canceled context. The terminal is in raw mode only while a
// line is being edited, so command output scrolls normally.
func (sh *Shell) Run(ctx context.Context) error {
	if !sh.running.CompareAndSwap(false, true) {
		return errors.New("shell: already running")
	}
	defer sh.running.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sh.ed.EnterRawMode(); err != nil {
			return err
		}
		line, err := sh.ed.ReadLine()
		rawErr := sh.ed.ExitRawMode()
		if err == io.EOF {
			fmt.Fprintf(sh.out, "⛔ Shell exited...\n")
			return nil
		}
		if err != nil {
			return err
		}
		if rawErr != nil {
			return rawErr
		}
		if sh.handleLine(line) {
			fmt.Fprintf(sh.out, "⛔ Shell exited...\n")
			return nil
		}
	}
}

// handleLine routes one accepted line. Reports whether the session is
// over.
func (sh *Shell) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return sh.handleMeta(strings.TrimPrefix(trimmed, "#"))
	}
	_ = sh.ExecReport(trimmed)
	sh.remember(trimmed)
	return false
}

// Exec runs one line through the shortcut set or the registry. A panic
// in a command implementation surfaces as an error, not a crash.
func (sh *Shell) Exec(line string) error {
	return easysh.CatchPanicOrError(func() error {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 0 && sh.shortcuts != nil && sh.shortcuts.Supported(trimmed[0]) {
			sh.log.Debugf("routing '%s' to shortcuts", trimmed)
			return sh.shortcuts.Dispatch(trimmed)
		}
		sh.log.Debugf("dispatching '%s'", trimmed)
		return sh.reg.Dispatch(trimmed)
	})
}

// ExecReport runs one line and prints the outcome the way the
// interactive loop does. The history is not touched.
func (sh *Shell) ExecReport(line string) error {
	err := sh.Exec(line)
	if err != nil {
		sh.fail.Fprintf(sh.out, "❌ Error: %v for line '%s'\n", err, line)
	} else {
		sh.ok.Fprintf(sh.out, "✅ Success: %s\n", line)
	}
	return err
}

// remember records an executed line, failed ones included, in the ring
// and the persistent store. The store is skipped when the ring drops
// the line, so the two stay in step on consecutive duplicates.
func (sh *Shell) remember(line string) {
	if !sh.ed.AddHistory(line) {
		return
	}
	if sh.db == nil {
		return
	}
	if _, err := sh.db.AddCmd(line); err != nil {
		sh.log.Warnf("history store: %v", err)
	}
}

// handleMeta executes one '#' command: rest is the line with the
// leading '#' stripped. Recalled entries are executed but not recorded
// again.
func (sh *Shell) handleMeta(rest string) bool {
	switch rest {
	case "q":
		return true
	case "":
		sh.listHistory()
	case "#":
		if last, ok := sh.ed.LastCommand(); ok {
			_ = sh.ExecReport(last)
		} else {
			fmt.Fprintf(sh.out, "⚠️ History is empty\n")
		}
	case "h":
		sh.help()
	case "c":
		sh.ed.ClearHistory()
		fmt.Fprintf(sh.out, "🧹 History cleared\n")
	default:
		index, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Fprintf(sh.out, "🚫 Not implemented\n")
			return false
		}
		if entry, ok := sh.ed.HistoryAt(index); ok {
			_ = sh.ExecReport(entry)
		} else {
			fmt.Fprintf(sh.out, "⚠️ No history entry at index %d\n", index)
		}
	}
	return false
}

func (sh *Shell) listHistory() {
	entries := sh.ed.History()
	if len(entries) == 0 {
		fmt.Fprintf(sh.out, "⚠️ History is empty\n")
		return
	}
	fmt.Fprintf(sh.out, "⚡ History:\n")
	for i, line := range entries {
		fmt.Fprintf(sh.out, "%3d : %s\n", i, line)
	}
}

const metaHelp = `  # : list history
 ## : repeat last command
 #N : exec from history at index N
 #h : this help
 #c : clear history
 #q : exit`

// help prints the command list aligned by name, the meta commands, the
// shortcut chords and the type code legend.
func (sh *Shell) help() {
	fmt.Fprintf(sh.out, "⚡ Commands:\n")
	width := 0
	for _, fi := range sh.reg.Functions() {
		if len(fi.Name) > width {
			width = len(fi.Name)
		}
	}
	for _, fi := range sh.reg.Functions() {
		fmt.Fprintf(sh.out, "%*s : %s\n", width, fi.Name, fi.Descriptor)
	}
	fmt.Fprintf(sh.out, "\n⚡ Meta:\n%s\n", metaHelp)
	if sh.shortcuts != nil && sh.shortcuts.NumShortcuts() > 0 {
		fmt.Fprintf(sh.out, "\n⚡ Shortcuts: %s\n", sh.shortcuts.Help())
	}
	fmt.Fprintf(sh.out, "\n📝 Arg types:\n%s\n", dispatch.DescriptorHelp())
}

// History exposes the in-memory ring, oldest first.
func (sh *Shell) History() []string {
	return sh.ed.History()
}
