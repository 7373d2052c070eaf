// interpreter_exec.go — PRIVATE: the tree-walking evaluation engine.
//
//   - Recursive `eval` over the closed AST variants (ast.go); no state
//     machine beyond the Go call stack.
//   - Internal failures are signalled with panic(rtErr{...}) and converted
//     to *RuntimeError exactly once, at the evalTop boundary. No exported
//     identifiers here; the public facade lives in interpreter.go.
//   - Built-in operators evaluate all arguments left-to-right and type-check
//     each before applying. `if` evaluates exactly one branch.
package minilisp

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                         PRIVATE PANIC / ERROR HELPERS
////////////////////////////////////////////////////////////////////////////////

type rtErr struct {
	kind RuntimeKind
	pos  Position
	msg  string
}

func failAt(kind RuntimeKind, pos Position, msg string) {
	panic(rtErr{kind: kind, pos: pos, msg: msg})
}

////////////////////////////////////////////////////////////////////////////////
//                              TOP-LEVEL DRIVER
////////////////////////////////////////////////////////////////////////////////

// evalTop runs the program against the global env, recovering the engine's
// panic signal into a *RuntimeError.
func (ip *Interpreter) evalTop(prog Program) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtErr)
			if !ok {
				panic(r) // not ours; let it crash
			}
			out = Value{}
			err = &RuntimeError{Kind: sig.kind, Line: sig.pos.Line, Col: sig.pos.Col, Msg: sig.msg}
		}
	}()

	for _, e := range prog {
		out = ip.eval(e, ip.Global)
	}
	return out, nil
}

////////////////////////////////////////////////////////////////////////////////
//                                  EVALUATOR
////////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) eval(e Expr, env *Env) Value {
	switch n := e.(type) {
	case *IntLit:
		return Int(n.Val)
	case *BoolLit:
		return Bool(n.Val)
	case *Ident:
		v, err := env.Get(n.Name)
		if err != nil {
			failAt(RunUnbound, n.P, err.Error())
		}
		return v
	case *Define:
		v := ip.eval(n.Value, env)
		if err := env.Define(n.Name, v); err != nil {
			failAt(RunRedefine, n.P, err.Error())
		}
		// A define is a statement; the parser keeps this value out of
		// operand position, so returning it is only a REPL convenience.
		return v
	case *Fun:
		return ClosureVal(&Closure{Params: n.Params, Defs: n.Defs, Body: n.Body, Env: env})
	case *If:
		if ip.condition(n.Cond, env) {
			return ip.eval(n.Then, env)
		}
		return ip.eval(n.Else, env)
	case *Op:
		return ip.applyOp(n, env)
	case *Call:
		return ip.applyClosure(n, env)
	default:
		failAt(RunNotCallable, e.Pos(), fmt.Sprintf("unknown AST node %T", e))
		return Value{}
	}
}

// condition evaluates an if condition. Checked mode requires a Boolean;
// unchecked mode falls back to truthiness (zero and #f are false).
func (ip *Interpreter) condition(e Expr, env *Env) bool {
	v := ip.eval(e, env)
	if ip.TypeCheck && v.Tag != VTBool {
		failAt(RunType, e.Pos(), fmt.Sprintf("if condition must be a boolean, got %s", tagName(v.Tag)))
	}
	return truthy(v)
}

func tagName(t ValueTag) string {
	switch t {
	case VTInt:
		return "an integer"
	case VTBool:
		return "a boolean"
	case VTClosure:
		return "a closure"
	default:
		return "an unknown value"
	}
}

func truthy(v Value) bool {
	switch v.Tag {
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	default:
		return true
	}
}

////////////////////////////////////////////////////////////////////////////////
//                              OPERAND COERCION
////////////////////////////////////////////////////////////////////////////////

// asInt type-checks an operand for the arithmetic/comparison operators.
// Unchecked mode adopts the classic bool-as-int reading (#t=1, #f=0).
func (ip *Interpreter) asInt(v Value, src Expr, op OpKind) int64 {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64)
	case VTBool:
		if ip.TypeCheck {
			failAt(RunType, src.Pos(), fmt.Sprintf("operator %s requires an integer, got a boolean", op))
		}
		if v.Data.(bool) {
			return 1
		}
		return 0
	default:
		// A closure has no integer reading even unchecked.
		failAt(RunType, src.Pos(), fmt.Sprintf("operator %s requires an integer, got %s", op, tagName(v.Tag)))
		return 0
	}
}

// asBool type-checks an operand for the logical operators. Unchecked mode
// uses truthiness.
func (ip *Interpreter) asBool(v Value, src Expr, op OpKind) bool {
	if v.Tag == VTBool {
		return v.Data.(bool)
	}
	if ip.TypeCheck {
		failAt(RunType, src.Pos(), fmt.Sprintf("operator %s requires a boolean, got %s", op, tagName(v.Tag)))
	}
	return truthy(v)
}

////////////////////////////////////////////////////////////////////////////////
//                              BUILT-IN OPERATORS
////////////////////////////////////////////////////////////////////////////////

// applyOp evaluates all arguments left-to-right, type-checks each against
// the operator's required operand type, then applies. Note that `and`/`or`
// do not short-circuit: every operand is evaluated and checked.
func (ip *Interpreter) applyOp(n *Op, env *Env) Value {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.eval(a, env)
	}

	switch n.Kind {
	case OpAdd:
		var sum int64
		for i, v := range args {
			sum += ip.asInt(v, n.Args[i], n.Kind)
		}
		return Int(sum)
	case OpSub:
		if len(args) == 1 {
			return Int(-ip.asInt(args[0], n.Args[0], n.Kind))
		}
		return Int(ip.asInt(args[0], n.Args[0], n.Kind) - ip.asInt(args[1], n.Args[1], n.Kind))
	case OpMul:
		var prod int64 = 1
		for i, v := range args {
			prod *= ip.asInt(v, n.Args[i], n.Kind)
		}
		return Int(prod)
	case OpDiv, OpMod:
		a := ip.asInt(args[0], n.Args[0], n.Kind)
		b := ip.asInt(args[1], n.Args[1], n.Kind)
		if b == 0 {
			failAt(RunDivZero, n.Args[1].Pos(), fmt.Sprintf("%s by zero", n.Kind))
		}
		// Go's integer division truncates toward zero, which is the
		// documented semantics for negative operands.
		if n.Kind == OpDiv {
			return Int(a / b)
		}
		return Int(a % b)
	case OpGt:
		return Bool(ip.asInt(args[0], n.Args[0], n.Kind) > ip.asInt(args[1], n.Args[1], n.Kind))
	case OpLt:
		return Bool(ip.asInt(args[0], n.Args[0], n.Kind) < ip.asInt(args[1], n.Args[1], n.Kind))
	case OpEq:
		first := ip.asInt(args[0], n.Args[0], n.Kind)
		all := true
		for i := 1; i < len(args); i++ {
			if ip.asInt(args[i], n.Args[i], n.Kind) != first {
				all = false
			}
		}
		return Bool(all)
	case OpAnd:
		all := true
		for i, v := range args {
			if !ip.asBool(v, n.Args[i], n.Kind) {
				all = false
			}
		}
		return Bool(all)
	case OpOr:
		any := false
		for i, v := range args {
			if ip.asBool(v, n.Args[i], n.Kind) {
				any = true
			}
		}
		return Bool(any)
	case OpNot:
		return Bool(!ip.asBool(args[0], n.Args[0], n.Kind))
	case OpPrintNum:
		v := ip.asInt(args[0], n.Args[0], n.Kind)
		fmt.Fprintf(ip.Out, "%d\n", v)
		return Int(v)
	case OpPrintBool:
		b := ip.asBool(args[0], n.Args[0], n.Kind)
		fmt.Fprintln(ip.Out, formatBool(b))
		return Bool(b)
	default:
		failAt(RunNotCallable, n.P, fmt.Sprintf("unknown operator %d", n.Kind))
		return Value{}
	}
}

////////////////////////////////////////////////////////////////////////////////
//                               CLOSURE CALLS
////////////////////////////////////////////////////////////////////////////////

// applyClosure evaluates the callee and its arguments in the caller's
// environment, then runs the body in a fresh frame parented to the
// closure's captured environment. Each call gets its own frame, so sibling
// and nested calls never observe each other's local defines.
func (ip *Interpreter) applyClosure(n *Call, env *Env) Value {
	callee := ip.eval(n.Callee, env)
	if callee.Tag != VTClosure {
		failAt(RunNotCallable, n.Callee.Pos(), fmt.Sprintf("cannot call %s", tagName(callee.Tag)))
	}
	c := callee.Data.(*Closure)

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.eval(a, env)
	}
	if len(args) != len(c.Params) {
		failAt(RunArity, n.P, fmt.Sprintf("arity mismatch: expected %d argument(s), got %d", len(c.Params), len(args)))
	}

	frame := NewEnv(c.Env)
	for i, p := range c.Params {
		if err := frame.Define(p, args[i]); err != nil {
			failAt(RunRedefine, n.P, err.Error())
		}
	}
	for _, d := range c.Defs {
		ip.eval(d, frame)
	}
	return ip.eval(c.Body, frame)
}
