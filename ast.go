// ast.go — the Mini-LISP abstract syntax tree.
//
// The AST is a closed set of node variants mirroring the grammar, one struct
// per form. Nodes are immutable after parsing: the parser is the only writer,
// and the evaluator matches exhaustively over the variants below.
//
//	IntLit   42, -5
//	BoolLit  #t, #f
//	Ident    x, make-adder
//	Define   (define name expr)             — statement position only
//	Fun      (fun (params...) define* expr)
//	If       (if cond then else)
//	Op       builtin operator application, e.g. (+ 1 2), (print-num x)
//	Call     user-closure application, e.g. (f 1 2), ((fun (x) x) 5)
//
// Every node carries the source position of its opening token so runtime
// diagnostics can point back into the source.
package minilisp

// Position is a 1-based line and 0-based column in the source text.
type Position struct {
	Line int
	Col  int
}

// Expr is the interface implemented by all AST nodes.
type Expr interface {
	Pos() Position
	exprNode()
}

// Program is the ordered sequence of top-level expressions.
type Program []Expr

// OpKind enumerates the built-in operators.
type OpKind int

const (
	OpAdd OpKind = iota // +   (>= 2 args)
	OpSub               // -   (1 or 2 args; 1 negates)
	OpMul               // *   (>= 2 args)
	OpDiv               // /   (2 args, truncating toward zero)
	OpMod               // mod (2 args, truncating toward zero)
	OpGt                // >   (2 args)
	OpLt                // <   (2 args)
	OpEq                // =   (>= 2 args)
	OpAnd               // and (>= 2 args)
	OpOr                // or  (>= 2 args)
	OpNot               // not (1 arg)
	OpPrintNum          // print-num  (1 arg)
	OpPrintBool         // print-bool (1 arg)
)

var opNames = map[OpKind]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "mod",
	OpGt:        ">",
	OpLt:        "<",
	OpEq:        "=",
	OpAnd:       "and",
	OpOr:        "or",
	OpNot:       "not",
	OpPrintNum:  "print-num",
	OpPrintBool: "print-bool",
}

func (k OpKind) String() string { return opNames[k] }

// IntLit is an integer literal.
type IntLit struct {
	Val int64
	P   Position
}

// BoolLit is a boolean literal (#t / #f).
type BoolLit struct {
	Val bool
	P   Position
}

// Ident is an identifier reference.
type Ident struct {
	Name string
	P    Position
}

// Define binds a name in the current environment. It is a statement: legal
// at top level and as a non-final function-body form, never in operand
// position.
type Define struct {
	Name  string
	Value Expr
	P     Position
}

// Fun is a function literal. Defs are the leading (define ...) body forms;
// Body is the final expression whose value the call returns.
type Fun struct {
	Params []string
	Defs   []*Define
	Body   Expr
	P      Position
}

// If is the three-armed conditional. The untaken branch is never evaluated.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	P    Position
}

// Op is a built-in operator application. Arity is enforced by the parser.
type Op struct {
	Kind OpKind
	Args []Expr
	P    Position
}

// Call applies a user closure: Callee evaluates to a Closure value.
type Call struct {
	Callee Expr
	Args   []Expr
	P      Position
}

func (e *IntLit) Pos() Position  { return e.P }
func (e *BoolLit) Pos() Position { return e.P }
func (e *Ident) Pos() Position   { return e.P }
func (e *Define) Pos() Position  { return e.P }
func (e *Fun) Pos() Position     { return e.P }
func (e *If) Pos() Position      { return e.P }
func (e *Op) Pos() Position      { return e.P }
func (e *Call) Pos() Position    { return e.P }

func (*IntLit) exprNode()  {}
func (*BoolLit) exprNode() {}
func (*Ident) exprNode()   {}
func (*Define) exprNode()  {}
func (*Fun) exprNode()     {}
func (*If) exprNode()      {}
func (*Op) exprNode()      {}
func (*Call) exprNode()    {}
