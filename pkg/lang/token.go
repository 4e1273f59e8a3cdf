package lang

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / procedure name
	NUMBER     // 12 or 12.5
	STRING     // "..."
	BOOL       // true / false

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Comparison operators
	GREATER    // >
	LESS       // <
	EQUALS     // ==
	NOT_EQ     // !=
	GREATER_EQ // >=
	LESS_EQ    // <=

	// Keywords
	AND   // "and"
	OR    // "or"
	PRINT // "print"
	DUP   // "dup"
	SWAP  // "swap"
	DROP  // "drop"
	BIND  // "bind"
	IF    // "if"
	ELIF  // "elif"
	ELSE  // "else"
	WHILE // "while"
	PROC  // "proc"
	CALL  // "call"
	DO    // "do"
	END   // "end"
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	BOOL:       "BOOL",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	GREATER:    "GREATER",
	LESS:       "LESS",
	EQUALS:     "EQUALS",
	NOT_EQ:     "NOT_EQ",
	GREATER_EQ: "GREATER_EQ",
	LESS_EQ:    "LESS_EQ",
	AND:        "AND",
	OR:         "OR",
	PRINT:      "PRINT",
	DUP:        "DUP",
	SWAP:       "SWAP",
	DROP:       "DROP",
	BIND:       "BIND",
	IF:         "IF",
	ELIF:       "ELIF",
	ELSE:       "ELSE",
	WHILE:      "WHILE",
	PROC:       "PROC",
	CALL:       "CALL",
	DO:         "DO",
	END:        "END",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type    TokenType
	Lexeme  string   // the exact source text that was matched
	Literal *Literal // set for NUMBER, STRING and BOOL
	Pos     int      // 0-based rune offset of the first character
	Line    int      // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}

// describe renders the token for error messages.
func (t Token) describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q (line %d)", t.Type, t.Lexeme, t.Line)
}
