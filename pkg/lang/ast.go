package lang

import (
	"fmt"
	"strings"
)

// UnaryOp is an operation that consumes one stack value.
type UnaryOp int

const (
	Print UnaryOp = iota
	Duplicate
	Drop
)

var unaryOpNames = [...]string{
	Print:     "Printing",
	Duplicate: "Duplicating",
	Drop:      "Dropping",
}

var unaryOpWords = [...]string{
	Print:     "print",
	Duplicate: "dup",
	Drop:      "drop",
}

// Name is the display name used in stack underflow errors.
func (op UnaryOp) Name() string { return unaryOpNames[op] }

func (op UnaryOp) String() string { return unaryOpWords[op] }

// BinaryOp is an operation that consumes two stack values.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	GT
	GTEq
	LT
	LTEq
	Eq
	NotEq
	And
	Or
	Swap
)

var binaryOpNames = [...]string{
	Add:   "Addition",
	Sub:   "Subtraction",
	Mul:   "Multiplication",
	Div:   "Division",
	Mod:   "Modulo",
	GT:    "Comparison",
	GTEq:  "Comparison",
	LT:    "Comparison",
	LTEq:  "Comparison",
	Eq:    "Comparison",
	NotEq: "Comparison",
	And:   "Logical and",
	Or:    "Logical or",
	Swap:  "Swapping",
}

var binaryOpSymbols = [...]string{
	Add:   "+",
	Sub:   "-",
	Mul:   "*",
	Div:   "/",
	Mod:   "%",
	GT:    ">",
	GTEq:  ">=",
	LT:    "<",
	LTEq:  "<=",
	Eq:    "==",
	NotEq: "!=",
	And:   "and",
	Or:    "or",
	Swap:  "swap",
}

// Name is the display name used in stack underflow errors.
func (op BinaryOp) Name() string { return binaryOpNames[op] }

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// PushStmt pushes a constant, or the value bound to Ident when Ident is set.
//
//	2 "two" true x
//	^ ^^^^^ ^^^^ ^  PushStmt
type PushStmt struct {
	Value Literal
	Ident string
}

func (*PushStmt) stmtNode() {}
func (s *PushStmt) String() string {
	if s.Ident != "" {
		return s.Ident
	}
	// String literals have no escapes and cannot contain a quote.
	if str, ok := s.Value.AsString(); ok {
		return `"` + str + `"`
	}
	return s.Value.String()
}

// IsIdent reports whether the statement reads a binding.
func (s *PushStmt) IsIdent() bool { return s.Ident != "" }

type UnaryStmt struct {
	Op UnaryOp
}

func (*UnaryStmt) stmtNode()        {}
func (s *UnaryStmt) String() string { return s.Op.String() }

type BinaryStmt struct {
	Op BinaryOp
}

func (*BinaryStmt) stmtNode()        {}
func (s *BinaryStmt) String() string { return s.Op.String() }

// BindStmt pops the top of the stack into Name.
type BindStmt struct {
	Name string
}

func (*BindStmt) stmtNode()        {}
func (s *BindStmt) String() string { return "bind " + s.Name }

// ElifClause is one `elif cond do body` arm of an IfStmt.
type ElifClause struct {
	Cond []Stmt
	Body []Stmt
}

// IfStmt:
//
//	if <Cond> do <Then> (elif <cond> do <body>)* (else do <Else>)? end
type IfStmt struct {
	Cond  []Stmt
	Then  []Stmt
	Elifs []ElifClause
	Else  []Stmt
}

func (*IfStmt) stmtNode() {}
func (s *IfStmt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "if %s do %s", joinStmts(s.Cond), joinStmts(s.Then))
	for _, e := range s.Elifs {
		fmt.Fprintf(&b, " elif %s do %s", joinStmts(e.Cond), joinStmts(e.Body))
	}
	if len(s.Else) > 0 {
		fmt.Fprintf(&b, " else do %s", joinStmts(s.Else))
	}
	b.WriteString(" end")
	return b.String()
}

type WhileStmt struct {
	Cond []Stmt
	Body []Stmt
}

func (*WhileStmt) stmtNode() {}
func (s *WhileStmt) String() string {
	return fmt.Sprintf("while %s do %s end", joinStmts(s.Cond), joinStmts(s.Body))
}

// ProcStmt registers Body under Name.
type ProcStmt struct {
	Name string
	Body []Stmt
}

func (*ProcStmt) stmtNode() {}
func (s *ProcStmt) String() string {
	return fmt.Sprintf("proc %s do %s end", s.Name, joinStmts(s.Body))
}

type CallStmt struct {
	Name string
}

func (*CallStmt) stmtNode()        {}
func (s *CallStmt) String() string { return "call " + s.Name }

// EmptyStmt is a no-op. Parse terminates every program with one.
type EmptyStmt struct{}

func (*EmptyStmt) stmtNode()      {}
func (*EmptyStmt) String() string { return "" }

func joinStmts(stmts []Stmt) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if str := s.String(); str != "" {
			parts = append(parts, str)
		}
	}
	return strings.Join(parts, " ")
}

// Format renders a statement sequence back to source form.
func Format(stmts []Stmt) string { return joinStmts(stmts) }
