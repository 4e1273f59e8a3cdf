package lang

import (
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the language pipeline can produce.
// Kinds satisfy error so callers can match them with errors.Is.
type ErrorKind int

const (
	// Lexical
	StringNotTerminated ErrorKind = iota + 1
	InvalidString

	// Syntax
	UnexpectedToken

	// Runtime
	StackUnderflow
	InvalidOperation
	IdentifierNotFound
	ProcedureNotFound

	// Entry point
	NoSourceFile
	SourceFileNotFound
	TooManyArgs
)

var errorKindNames = map[ErrorKind]string{
	StringNotTerminated: "string not terminated",
	InvalidString:       "invalid string",
	UnexpectedToken:     "unexpected token",
	StackUnderflow:      "stack underflow",
	InvalidOperation:    "invalid operation",
	IdentifierNotFound:  "identifier not found",
	ProcedureNotFound:   "procedure not found",
	NoSourceFile:        "no source file",
	SourceFileNotFound:  "source file not found",
	TooManyArgs:         "too many arguments",
}

func (k ErrorKind) Error() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single error type returned by the lexer, the parser and the
// interpreter. Only the fields relevant to Kind are populated.
type Error struct {
	Kind ErrorKind

	Fragment string // InvalidString: offending source text
	Pos      int    // InvalidString: 0-based rune offset

	Found    Token       // UnexpectedToken
	Expected []TokenType // UnexpectedToken: empty when any statement would do

	Op    string // StackUnderflow: operation display name
	Count int    // StackUnderflow: required operand count

	Name   string // IdentifierNotFound, ProcedureNotFound, SourceFileNotFound
	Detail string // InvalidOperation: the rule that was violated
}

func (e *Error) Error() string {
	switch e.Kind {
	case StringNotTerminated:
		return "string is not terminated before end of input"
	case InvalidString:
		return fmt.Sprintf("invalid string '%s' at position %d", e.Fragment, e.Pos)
	case UnexpectedToken:
		msg := "unexpected token: " + e.Found.describe()
		if len(e.Expected) > 0 {
			names := make([]string, len(e.Expected))
			for i, tt := range e.Expected {
				names[i] = tt.String()
			}
			msg += ", expected " + strings.Join(names, " or ")
		}
		return msg
	case StackUnderflow:
		return fmt.Sprintf("%s requires at least %d items on the stack", e.Op, e.Count)
	case InvalidOperation:
		return "invalid operation: " + e.Detail
	case IdentifierNotFound:
		return fmt.Sprintf("identifier '%s' does not exist", e.Name)
	case ProcedureNotFound:
		return fmt.Sprintf("procedure '%s' does not exist", e.Name)
	case NoSourceFile:
		return "please provide a source file"
	case SourceFileNotFound:
		return fmt.Sprintf("could not find source file '%s'", e.Name)
	case TooManyArgs:
		return "too many arguments, either pass the source file or run with no arguments for REPL mode"
	}
	return e.Kind.Error()
}

// Unwrap exposes the kind so errors.Is(err, lang.StackUnderflow) works.
func (e *Error) Unwrap() error { return e.Kind }

func errInvalidOperation(format string, args ...any) *Error {
	return &Error{Kind: InvalidOperation, Detail: fmt.Sprintf(format, args...)}
}

// NewStackUnderflow reports that op needed count operands.
func NewStackUnderflow(op string, count int) *Error {
	return &Error{Kind: StackUnderflow, Op: op, Count: count}
}

// NewInvalidOperation reports a violated typing rule.
func NewInvalidOperation(detail string) *Error {
	return &Error{Kind: InvalidOperation, Detail: detail}
}

// NewIdentifierNotFound reports a read of an unbound name.
func NewIdentifierNotFound(name string) *Error {
	return &Error{Kind: IdentifierNotFound, Name: name}
}

// NewProcedureNotFound reports a call of an undefined procedure.
func NewProcedureNotFound(name string) *Error {
	return &Error{Kind: ProcedureNotFound, Name: name}
}

// NewSourceFileNotFound reports a missing script path.
func NewSourceFileNotFound(path string) *Error {
	return &Error{Kind: SourceFileNotFound, Name: path}
}
