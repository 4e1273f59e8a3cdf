// Package interp evaluates parsed programs against an operand stack and an
// environment of variable bindings and procedures.
package interp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gostack/pkg/lang"
)

// Interpreter owns the operand stack and the environment. It is not safe
// for concurrent use; state persists across Interpret calls until Reset.
type Interpreter struct {
	stack  Stack
	env    *Environment
	out    io.Writer
	logger *slog.Logger
	trace  bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithLogger sets the logger used for the Debug-level evaluation trace.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		env:    NewEnvironment(),
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.trace = in.logger.Enabled(context.Background(), slog.LevelDebug)
	return in
}

// Stack returns a copy of the operand stack, bottom first.
func (in *Interpreter) Stack() []lang.Literal { return in.stack.Snapshot() }

// Environment exposes the bindings and procedures.
func (in *Interpreter) Environment() *Environment { return in.env }

// Reset clears the stack, the bindings and the procedures.
func (in *Interpreter) Reset() {
	in.stack.Clear()
	in.env.Clear()
}

// Exec lexes, parses and runs src, stopping at the first error.
func (in *Interpreter) Exec(src string) error {
	tokens, err := lang.Lex(src)
	if err != nil {
		return err
	}
	stmts, err := lang.Parse(tokens)
	if err != nil {
		return err
	}
	return in.Interpret(stmts)
}

// Interpret runs stmts in order. Errors abort the run; state changes made
// before the failing statement are kept.
func (in *Interpreter) Interpret(stmts []lang.Stmt) error {
	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt lang.Stmt) error {
	if in.trace {
		in.logger.Debug("exec", slog.String("stmt", stmt.String()), slog.Int("stack-size", in.stack.Len()))
	}
	switch s := stmt.(type) {
	case *lang.PushStmt:
		return in.execPush(s)
	case *lang.UnaryStmt:
		return in.execUnary(s.Op)
	case *lang.BinaryStmt:
		return in.execBinary(s.Op)
	case *lang.BindStmt:
		v, ok := in.stack.Pop()
		if !ok {
			return lang.NewStackUnderflow("Binding", 1)
		}
		in.env.Bind(s.Name, v)
		if in.trace {
			in.logger.Debug("bind", slog.String("name", s.Name), slog.String("value", v.GoString()))
		}
		return nil
	case *lang.IfStmt:
		return in.execIf(s)
	case *lang.WhileStmt:
		return in.execWhile(s)
	case *lang.ProcStmt:
		in.env.DefineProcedure(s.Name, s.Body)
		if in.trace {
			in.logger.Debug("define procedure", slog.String("name", s.Name), slog.Int("body-size", len(s.Body)))
		}
		return nil
	case *lang.CallStmt:
		body, ok := in.env.Procedure(s.Name)
		if !ok {
			return lang.NewProcedureNotFound(s.Name)
		}
		if in.trace {
			in.logger.Debug("call procedure", slog.String("name", s.Name))
		}
		return in.Interpret(body)
	case *lang.EmptyStmt:
		return nil
	}
	return lang.NewInvalidOperation(fmt.Sprintf("unknown statement %T", stmt))
}

func (in *Interpreter) execPush(s *lang.PushStmt) error {
	if !s.IsIdent() {
		in.stack.Push(s.Value)
		return nil
	}
	v, ok := in.env.Lookup(s.Ident)
	if !ok {
		return lang.NewIdentifierNotFound(s.Ident)
	}
	in.stack.Push(v)
	return nil
}

func (in *Interpreter) execUnary(op lang.UnaryOp) error {
	v, ok := in.stack.Pop()
	if !ok {
		return lang.NewStackUnderflow(op.Name(), 1)
	}
	switch op {
	case lang.Print:
		if _, err := fmt.Fprintln(in.out, v.String()); err != nil {
			return err
		}
	case lang.Duplicate:
		in.stack.Push(v)
		in.stack.Push(v)
	case lang.Drop:
	}
	return nil
}

// execBinary pops second then first. A lone value is put back when first is
// missing, and both operands are put back when the operation fails.
func (in *Interpreter) execBinary(op lang.BinaryOp) error {
	second, ok := in.stack.Pop()
	if !ok {
		return lang.NewStackUnderflow(op.Name(), 2)
	}
	first, ok := in.stack.Pop()
	if !ok {
		in.stack.Push(second)
		return lang.NewStackUnderflow(op.Name(), 2)
	}

	if op == lang.Swap {
		in.stack.Push(second)
		in.stack.Push(first)
		return nil
	}

	result, err := lang.Apply(op, first, second)
	if err != nil {
		in.stack.Push(first)
		in.stack.Push(second)
		return err
	}
	in.stack.Push(result)
	return nil
}

// condition runs cond and pops the Bool it must leave behind. A non-Bool
// value is put back before failing.
func (in *Interpreter) condition(keyword string, cond []lang.Stmt) (bool, error) {
	if err := in.Interpret(cond); err != nil {
		return false, err
	}
	v, ok := in.stack.Pop()
	if !ok {
		return false, lang.NewInvalidOperation(keyword + " condition left no value on the stack")
	}
	b, isBool := v.AsBool()
	if !isBool {
		in.stack.Push(v)
		return false, lang.NewInvalidOperation(fmt.Sprintf("%s condition must be a boolean, got %s", keyword, v.Kind()))
	}
	return b, nil
}

func (in *Interpreter) execIf(s *lang.IfStmt) error {
	ok, err := in.condition("if", s.Cond)
	if err != nil {
		return err
	}
	if ok {
		return in.Interpret(s.Then)
	}
	for _, elif := range s.Elifs {
		ok, err := in.condition("elif", elif.Cond)
		if err != nil {
			return err
		}
		if ok {
			return in.Interpret(elif.Body)
		}
	}
	return in.Interpret(s.Else)
}

func (in *Interpreter) execWhile(s *lang.WhileStmt) error {
	for {
		ok, err := in.condition("while", s.Cond)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := in.Interpret(s.Body); err != nil {
			return err
		}
	}
}
