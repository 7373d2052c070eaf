// interpreter.go — PUBLIC API SURFACE for the Mini-LISP interpreter.
//
// OVERVIEW
// ========
// This file exposes the public surface of the runtime:
//
//   - The runtime value model (`Value`, `ValueTag`, constructors `Int`/`Bool`).
//   - Closures (`Closure`) as first-class values.
//   - Environments (`Env`) with lexical scoping and append-only bindings.
//   - The `Interpreter` type with the canonical entry points:
//     `Run` (whole program), `EvalSource` (persistent, for REPLs), and
//     `EvalProgram` (pre-parsed AST).
//   - A structured `RuntimeError` surfaced as a Go error by all entry points.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates in environments (`*Env`) that form a lexical parent chain.
// `Define` inserts into the current frame only and fails on a duplicate name
// in that same frame; lookup walks self → parent → … → global. There is no
// update operation: bindings are append-only by design, so shadowing in a
// child frame is the only way to "change" a name.
//
// A closure captures the environment active at its definition site. Each
// call creates exactly one child frame parented to that captured environment
// (not the caller's), binds parameters positionally, evaluates the leading
// body defines in order, and returns the value of the final body expression.
//
// TYPE CHECKING
// -------------
// Runtime type checking is a configuration value (`TypeCheck`, default on)
// on the interpreter, not ambient state. When enabled, an operand whose tag
// does not match an operator's required type (Integer for arithmetic and
// comparison, Boolean for logical and `if`) aborts the run with a
// `RunType` error. When disabled, booleans coerce to 0/1 for arithmetic and
// integers are truthy-if-nonzero for logical operators and `if`, matching
// the untyped behavior the checked mode exists to rule out.
//
// ERROR MODEL
// -----------
// The first fatal error of any kind aborts the entire run: no recovery, no
// per-form isolation. Errors carry a kind for programmatic inspection; the
// user-visible text contract (`syntax error` / `Type error!`) is applied by
// UserMessage in errors.go, not here.
package minilisp

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// Version of the interpreter.
const Version = "0.2.0"

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt     ValueTag = iota // int64
	VTBool                    // bool
	VTClosure                 // *Closure
)

// Value is the universal runtime carrier used by the evaluator. Tag is the
// discriminant indicating which Go type Data holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// String renders a debug representation. Language-facing formatting
// (`#t`/`#f`) lives in printer.go.
func (v Value) String() string {
	if v.Data == nil {
		return "<zero>"
	}
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTBool:
		return fmt.Sprintf("%v", v.Data.(bool))
	case VTClosure:
		return "<closure>"
	default:
		return "<unknown>"
	}
}

// Int wraps an int64 into a Value.
func Int(n int64) Value { return Value{Tag: VTInt, Data: n} }

// Bool wraps a bool into a Value.
func Bool(b bool) Value { return Value{Tag: VTBool, Data: b} }

// Closure is a function value paired with the environment captured at its
// definition site. Defs are the leading body defines, Body the final
// expression; both reference the immutable AST.
type Closure struct {
	Params []string
	Defs   []*Define
	Body   Expr
	Env    *Env
}

// ClosureVal wraps *Closure into a Value (Tag=VTClosure).
func ClosureVal(c *Closure) Value { return Value{Tag: VTClosure, Data: c} }

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; bindings are append-only (no update, no delete).
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in this frame. Defining a name twice in the same
// frame is an error; shadowing an outer binding is not.
func (e *Env) Define(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		return fmt.Errorf("duplicate definition of %s", name)
	}
	e.table[name] = v
	return nil
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("unbound variable: %s", name)
}

////////////////////////////////////////////////////////////////////////////////
//                                 RUNTIME ERRORS
////////////////////////////////////////////////////////////////////////////////

// RuntimeKind classifies execution-time failures. The kinds are stable and
// deterministic so callers (and tests) can match on them without relying on
// message text.
type RuntimeKind int

const (
	RunType        RuntimeKind = iota // operand tag mismatch under TypeCheck
	RunUnbound                        // identifier not bound anywhere in the chain
	RunRedefine                       // duplicate define in the same frame
	RunArity                          // closure called with the wrong argument count
	RunNotCallable                    // call head did not evaluate to a closure
	RunDivZero                        // division or modulo by zero
)

func (k RuntimeKind) String() string {
	switch k {
	case RunType:
		return "type"
	case RunUnbound:
		return "unbound"
	case RunRedefine:
		return "redefine"
	case RunArity:
		return "arity"
	case RunNotCallable:
		return "not-callable"
	case RunDivZero:
		return "div-zero"
	default:
		return "unknown"
	}
}

// RuntimeError represents an execution-time failure with a source location.
// Line is 1-based, Col 0-based (same convention as the lexer/parser).
type RuntimeError struct {
	Kind RuntimeKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

////////////////////////////////////////////////////////////////////////////////
//                                  INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter evaluates Mini-LISP programs against a single global
// environment. It is single-threaded: do not share one instance across
// goroutines.
type Interpreter struct {
	// Global is the top-level environment; it lives for the interpreter's
	// lifetime and is the parent of no one until closures capture it.
	Global *Env

	// Out receives print-num / print-bool output, one line per call, in
	// evaluation order.
	Out io.Writer

	// TypeCheck enables runtime operand checking (default true).
	TypeCheck bool
}

// NewInterpreter returns an interpreter with a fresh global environment,
// type checking enabled, and output on stdout.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global:    NewEnv(nil),
		Out:       os.Stdout,
		TypeCheck: true,
	}
}

// Run parses src completely, then evaluates each top-level form in order
// against the global environment. The first error of any kind aborts the
// run; print output emitted before the failing form is not retracted.
func (ip *Interpreter) Run(src string) error {
	prog, err := Parse(src)
	if err != nil {
		return err
	}
	_, err = ip.EvalProgram(prog)
	return err
}

// EvalSource parses and evaluates src against the persistent global
// environment and returns the value of the last top-level form. Intended
// for REPLs; definitions accumulate across calls.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return ip.EvalProgram(prog)
}

// EvalProgram evaluates a parsed program in order against the global
// environment and returns the last form's value. On failure it returns a
// *RuntimeError with the failing node's position.
func (ip *Interpreter) EvalProgram(prog Program) (Value, error) {
	return ip.evalTop(prog)
}
