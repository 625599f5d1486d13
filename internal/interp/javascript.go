// Package interp provides interpreters for the console core. The contract is
// the one the session expects: Evaluate receives the accumulated source and
// returns true while the statement is syntactically incomplete.
package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// JavaScript evaluates source text in a persistent goja runtime, so variables
// and functions survive across lines like in a real REPL.
//
// Diagnostics are written to the error stream and the evaluation still
// reports completion; only syntactically incomplete input requests more.
type JavaScript struct {
	vm  *goja.Runtime
	out io.Writer
	err io.Writer
}

// NewJavaScript creates the interpreter. Streams may be nil and set later via
// SetStreams once the console channels exist.
func NewJavaScript(out, errw io.Writer) *JavaScript {
	j := &JavaScript{vm: goja.New(), out: out, err: errw}
	// print(...) writes space-joined arguments to the output stream.
	_ = j.vm.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		fmt.Fprintln(j.stdout(), strings.Join(parts, " "))
		return goja.Undefined()
	})
	return j
}

// SetStreams points the interpreter at the console output and error channels.
func (j *JavaScript) SetStreams(out, errw io.Writer) {
	j.out = out
	j.err = errw
}

// Evaluate implements the console interpreter contract.
func (j *JavaScript) Evaluate(source string) bool {
	if _, err := goja.Compile("repl", source, false); err != nil {
		if incomplete(err) {
			return true
		}
		fmt.Fprintf(j.stderr(), "%v\n", err)
		return false
	}
	value, err := j.vm.RunString(source)
	if err != nil {
		fmt.Fprintf(j.stderr(), "%v\n", err)
		return false
	}
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		fmt.Fprintln(j.stdout(), value.String())
	}
	return false
}

func (j *JavaScript) stdout() io.Writer {
	if j.out == nil {
		return io.Discard
	}
	return j.out
}

func (j *JavaScript) stderr() io.Writer {
	if j.err == nil {
		return io.Discard
	}
	return j.err
}

// incomplete reports whether a compile error means the source simply stopped
// mid-statement (unclosed brace, paren, etc.) rather than being invalid.
func incomplete(err error) bool {
	return strings.Contains(err.Error(), "Unexpected end of input")
}
