/*
Package dispatch implements the descriptor-driven command engine: a
line of text is tokenized, the first token resolved in the registered
function table, the argument count checked for exact arity, every
argument token parsed into its typed storage slot, and the bound Go
function invoked with the parsed values.

The hot path does not allocate: tokens slice the input line and
argument storage comes from a per-registry pool of fixed-capacity
frames, sized when the table is built by the per-type maxima over all
registered descriptors. The invoke boundary goes through reflect:
implementation signatures are checked against the descriptors once,
when the table is built, and the arguments are boxed per call.
*/
package dispatch

import "fmt"

// Dispatch runs one line: tokenize, resolve, arity check, parse,
// invoke. It returns nil after the function was invoked, or one of the
// typed errors; both outcomes are terminal for the attempt. The line
// must not be mutated during the call. Safe for concurrent use.
func (r *Registry) Dispatch(line string) error {
	f := r.newCallFrame()
	defer r.disposeCallFrame(f)

	n, err := Tokenize(line, f.toks)
	if err != nil {
		return err
	}
	e, found := r.byName[f.toks[0]]
	if !found {
		return fmt.Errorf("'%s': %w", f.toks[0], ErrUnknownFunction)
	}
	if n-1 != e.arity {
		return &ArityError{Name: e.name, Expected: e.arity, Got: n - 1}
	}
	if err = r.parsers[e.descIdx](f, f.toks[1:n]); err != nil {
		return fmt.Errorf("'%s': %w", e.name, err)
	}
	e.invoke(f)
	return nil
}

func (r *Registry) newCallFrame() *frame {
	return r.framePool.Get().(*frame)
}

func (r *Registry) disposeCallFrame(f *frame) {
	f.reset()
	r.framePool.Put(f)
}
